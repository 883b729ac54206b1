package config_test

import (
	"context"
	"os"
	"testing"

	"github.com/minglehq/mingle/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
				convey.So(cfg.MutualFriendWeight, convey.ShouldEqual, 0.6)
				convey.So(cfg.InterestWeight, convey.ShouldEqual, 0.4)
				convey.So(cfg.DefaultLimit, convey.ShouldEqual, 5)
				convey.So(cfg.MaxLimit, convey.ShouldEqual, 50)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("MINGLE_ADDR", ":8080")
			_ = os.Setenv("MINGLE_DATA_DIR", "/tmp/mingle-data")
			_ = os.Setenv("MINGLE_MUTUAL_FRIEND_WEIGHT", "0.7")
			_ = os.Setenv("MINGLE_INTEREST_WEIGHT", "0.3")
			_ = os.Setenv("MINGLE_DEFAULT_LIMIT", "10")
			_ = os.Setenv("MINGLE_MAX_LIMIT", "25")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.DataDir, convey.ShouldEqual, "/tmp/mingle-data")
				convey.So(cfg.MutualFriendWeight, convey.ShouldEqual, 0.7)
				convey.So(cfg.InterestWeight, convey.ShouldEqual, 0.3)
				convey.So(cfg.DefaultLimit, convey.ShouldEqual, 10)
				convey.So(cfg.MaxLimit, convey.ShouldEqual, 25)
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			yamlContent := `
addr: ":9090"
data_dir: "/var/lib/mingle"
mutual_friend_weight: 0.5
interest_weight: 0.5
default_limit: 3
max_limit: 30
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("MINGLE_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from YAML file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.DataDir, convey.ShouldEqual, "/var/lib/mingle")
				convey.So(cfg.MutualFriendWeight, convey.ShouldEqual, 0.5)
				convey.So(cfg.InterestWeight, convey.ShouldEqual, 0.5)
				convey.So(cfg.DefaultLimit, convey.ShouldEqual, 3)
				convey.So(cfg.MaxLimit, convey.ShouldEqual, 30)
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			yamlContent := `
addr: ":9090"
default_limit: 3
max_limit: 30
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("MINGLE_CONFIG", tmpFile)
			_ = os.Setenv("MINGLE_ADDR", ":8080")       // This should override the file
			_ = os.Setenv("MINGLE_DEFAULT_LIMIT", "10") // This should override the file
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")   // Overridden by env
				convey.So(cfg.DefaultLimit, convey.ShouldEqual, 10) // Overridden by env
				convey.So(cfg.MaxLimit, convey.ShouldEqual, 30)     // From file
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			invalidYaml := `invalid: yaml: content: [`
			tmpFile := createTempConfigFile(invalidYaml)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("MINGLE_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			_ = os.Setenv("MINGLE_CONFIG", "/non/existent/file.yaml")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with empty addr", func() {
			_ = os.Setenv("MINGLE_ADDR", "")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(err.Error(), convey.ShouldContainSubstring, "addr must not be empty")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with negative weights", func() {
			_ = os.Setenv("MINGLE_MUTUAL_FRIEND_WEIGHT", "-0.6")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(err.Error(), convey.ShouldContainSubstring, "weights")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with zero total weight", func() {
			_ = os.Setenv("MINGLE_MUTUAL_FRIEND_WEIGHT", "0")
			_ = os.Setenv("MINGLE_INTEREST_WEIGHT", "0")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with a default limit above max", func() {
			_ = os.Setenv("MINGLE_DEFAULT_LIMIT", "100")
			_ = os.Setenv("MINGLE_MAX_LIMIT", "10")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(err.Error(), convey.ShouldContainSubstring, "default_limit")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with partial YAML file", func() {
			yamlContent := `
addr: ":9090"
default_limit: 7
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("MINGLE_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should merge with defaults for missing fields", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")           // From file
				convey.So(cfg.DefaultLimit, convey.ShouldEqual, 7)         // From file
				convey.So(cfg.MutualFriendWeight, convey.ShouldEqual, 0.6) // From defaults
				convey.So(cfg.InterestWeight, convey.ShouldEqual, 0.4)     // From defaults
				convey.So(cfg.MaxLimit, convey.ShouldEqual, 50)            // From defaults
			})
		})

		convey.Convey("When loading config with invalid numeric environment variables", func() {
			_ = os.Setenv("MINGLE_DEFAULT_LIMIT", "not_a_number")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}

// Helper functions.

func clearConfigEnvVars() {
	envVars := []string{
		"MINGLE_CONFIG",
		"MINGLE_ADDR",
		"MINGLE_DATA_DIR",
		"MINGLE_MUTUAL_FRIEND_WEIGHT",
		"MINGLE_INTEREST_WEIGHT",
		"MINGLE_DEFAULT_LIMIT",
		"MINGLE_MAX_LIMIT",
	}
	for _, envVar := range envVars {
		_ = os.Unsetenv(envVar)
	}
}

func createTempConfigFile(content string) string {
	tmpFile, err := os.CreateTemp("", "mingle-config-*.yaml")
	if err != nil {
		panic(err)
	}

	if _, err := tmpFile.WriteString(content); err != nil {
		panic(err)
	}

	if err := tmpFile.Close(); err != nil {
		panic(err)
	}

	return tmpFile.Name()
}
