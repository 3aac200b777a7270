// Package model contains domain models passed between layers.
package model

// Record is one timed ascent as published by the data source.
// Field names mirror the upstream JSON.
type Record struct {
	Time        string `json:"Time"`    // "MM:SS"
	Place       int    `json:"Place"`   // finishing rank among the dataset
	Seconds     int    `json:"Seconds"` // Time in seconds, as published
	Name        string `json:"Name"`
	Year        int    `json:"Year"`
	Nationality string `json:"Nationality"`
	Doping      string `json:"Doping"` // empty when there is no allegation
	URL         string `json:"URL"`
}

// HasDopingAllegation reports whether the record carries a doping note.
func (r Record) HasDopingAllegation() bool {
	return r.Doping != ""
}

// Dataset is the ordered sequence of fetched records. It is never mutated
// after a successful fetch.
type Dataset []Record

// Years returns the year of every record, in dataset order.
func (d Dataset) Years() []int {
	years := make([]int, len(d))
	for i, r := range d {
		years[i] = r.Year
	}
	return years
}

// Times returns the raw "MM:SS" string of every record, in dataset order.
func (d Dataset) Times() []string {
	times := make([]string, len(d))
	for i, r := range d {
		times[i] = r.Time
	}
	return times
}
