package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/alliancelab/warboard/internal/config"
)

func TestLoad(t *testing.T) {
	Convey("Given a clean environment", t, func() {
		for _, key := range []string{
			"WARBOARD_CONFIG", "WARBOARD_ADDR", "WARBOARD_QUEUE_SIZE",
			"WARBOARD_WORKER_COUNT", "WARBOARD_LOG_LEVEL", "WARBOARD_REPORT_TTL_SECONDS",
		} {
			So(os.Unsetenv(key), ShouldBeNil)
		}

		Convey("When loading with no overrides", func() {
			cfg, err := config.Load(context.Background())
			So(err, ShouldBeNil)

			Convey("Then defaults apply", func() {
				So(cfg.Addr, ShouldEqual, ":8090")
				So(cfg.QueueSize, ShouldEqual, 1024)
				So(cfg.LogLevel, ShouldEqual, "info")
				So(cfg.ReportTTLSeconds, ShouldEqual, 180)
				So(cfg.DistributionBins, ShouldEqual, 6)
				So(cfg.MaxTopLimit, ShouldEqual, 100)
				So(cfg.WorkerCount, ShouldBeGreaterThan, 0)
			})
		})

		Convey("When environment variables override defaults", func() {
			t.Setenv("WARBOARD_ADDR", ":9999")
			t.Setenv("WARBOARD_QUEUE_SIZE", "64")
			t.Setenv("WARBOARD_LOG_LEVEL", "debug")

			cfg, err := config.Load(context.Background())
			So(err, ShouldBeNil)

			Convey("Then the env values win", func() {
				So(cfg.Addr, ShouldEqual, ":9999")
				So(cfg.QueueSize, ShouldEqual, 64)
				So(cfg.LogLevel, ShouldEqual, "debug")
			})

			Convey("And untouched fields keep defaults", func() {
				So(cfg.DedupeSize, ShouldEqual, 50_000)
			})
		})

		Convey("When a YAML file is layered under env", func() {
			dir := t.TempDir()
			path := filepath.Join(dir, "warboard.yaml")
			So(os.WriteFile(path, []byte("addr: \":7070\"\nqueue_size: 32\n"), 0o600), ShouldBeNil)
			t.Setenv("WARBOARD_CONFIG", path)
			t.Setenv("WARBOARD_QUEUE_SIZE", "64")

			cfg, err := config.Load(context.Background())
			So(err, ShouldBeNil)

			Convey("Then file values apply but env still wins", func() {
				So(cfg.Addr, ShouldEqual, ":7070")
				So(cfg.QueueSize, ShouldEqual, 64)
			})
		})

		Convey("When the config file does not exist", func() {
			t.Setenv("WARBOARD_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))

			_, err := config.Load(context.Background())

			Convey("Then loading fails with the load sentinel", func() {
				So(err, ShouldNotBeNil)
				So(errors.Is(err, config.ErrLoadConfig), ShouldBeTrue)
			})
		})

		Convey("When an override is invalid", func() {
			t.Setenv("WARBOARD_QUEUE_SIZE", "0")

			_, err := config.Load(context.Background())

			Convey("Then validation rejects it", func() {
				So(err, ShouldNotBeNil)
				So(errors.Is(err, config.ErrInvalidConfig), ShouldBeTrue)
			})
		})
	})
}
