package config_test

import (
	"testing"

	"github.com/minglehq/mingle/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.LogFormat, convey.ShouldEqual, "text")
			convey.So(cfg.DataDir, convey.ShouldEqual, "")
			convey.So(cfg.MutualFriendWeight, convey.ShouldEqual, 0.6)
			convey.So(cfg.InterestWeight, convey.ShouldEqual, 0.4)
			convey.So(cfg.DefaultLimit, convey.ShouldEqual, 5)
			convey.So(cfg.MaxLimit, convey.ShouldEqual, 50)
		})

		convey.Convey("And the weights should blend to a full score", func() {
			convey.So(cfg.MutualFriendWeight+cfg.InterestWeight, convey.ShouldEqual, 1.0)
		})
	})
}
