package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestLoggerInit(t *testing.T) {
	Convey("Given the default initializer", t, func() {
		So(Init(), ShouldBeNil)

		Convey("Then the global logger should be available", func() {
			So(Get(), ShouldNotBeNil)
			So(Sync(), ShouldBeNil)
		})
	})

	Convey("Given an unknown format", t, func() {
		err := InitWithOptions("xml", &bytes.Buffer{})

		Convey("Then initialization should fail", func() {
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "unknown log format")
		})
	})
}

func TestLoggerJSONOutput(t *testing.T) {
	Convey("Given a JSON logger writing to a buffer", t, func() {
		var buf bytes.Buffer
		So(InitWithOptions(FormatJSON, &buf), ShouldBeNil)
		defer func() { _ = Init() }()

		Convey("When logging with fields", func() {
			Get().Info(context.Background(), "chart loaded", Int("records", 35), String("url", "x"), Bool("clean", true))

			Convey("Then the line should be valid JSON with the fields and a source", func() {
				var line map[string]any
				So(json.Unmarshal(buf.Bytes(), &line), ShouldBeNil)
				So(line["msg"], ShouldEqual, "chart loaded")
				So(line["records"], ShouldEqual, float64(35))
				So(line["clean"], ShouldEqual, true)
				So(line["source"], ShouldContainSubstring, "logger_test.go")
			})
		})

		Convey("When logging through a named logger with bound fields", func() {
			Named("pipeline").With(String("id", "abc")).Warn(context.Background(), "slow fetch")

			Convey("Then the fields should be grouped under the name", func() {
				var line map[string]any
				So(json.Unmarshal(buf.Bytes(), &line), ShouldBeNil)
				group, ok := line["pipeline"].(map[string]any)
				So(ok, ShouldBeTrue)
				So(group["id"], ShouldEqual, "abc")
			})
		})
	})
}

func TestSetLevelString(t *testing.T) {
	Convey("Given a JSON logger", t, func() {
		var buf bytes.Buffer
		So(InitWithOptions(FormatJSON, &buf), ShouldBeNil)
		defer func() { _ = Init() }()

		Convey("When the level is raised to error", func() {
			So(SetLevelString("error"), ShouldBeNil)
			Get().Info(context.Background(), "hidden")

			Convey("Then info lines should be dropped", func() {
				So(buf.Len(), ShouldEqual, 0)
			})
		})

		Convey("When an unknown level is given", func() {
			err := SetLevelString("loud")

			Convey("Then it should be rejected", func() {
				So(err, ShouldNotBeNil)
			})
		})

		Convey("When accepted spellings are given", func() {
			for _, lvl := range []string{"debug", "info", "", "warn", "WARNING", " error "} {
				So(SetLevelString(lvl), ShouldBeNil)
			}
		})
	})
}
