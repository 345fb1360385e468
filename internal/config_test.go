package internal

import (
	"os"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func setEnv(key, value string) {
	previous, had := os.LookupEnv(key)
	Expect(os.Setenv(key, value)).To(Succeed())
	DeferCleanup(func() {
		if had {
			_ = os.Setenv(key, previous)
			return
		}
		_ = os.Unsetenv(key)
	})
}

var _ = Describe("Config", func() {
	Describe("LoadConfigFromEnv", func() {
		BeforeEach(func() {
			for _, key := range []string{"PORT", "FRONTEND_URL", "APP_ENV", "DB_MAX_OPEN_CONNS", "DB_CONNECT_TIMEOUT"} {
				setEnv(key, "")
			}
		})

		It("falls back to the service defaults", func() {
			cfg := LoadConfigFromEnv()

			Expect(cfg.Server.Port).To(Equal(3002))
			Expect(cfg.Server.Origins()).To(Equal([]string{"http://localhost:8080"}))
			Expect(cfg.Database.MaxOpenConns).To(Equal(20))
			Expect(cfg.Database.ConnMaxIdleTime).To(Equal(30 * time.Second))
			Expect(cfg.Database.ConnectTimeout).To(Equal(5 * time.Second))
			Expect(cfg.IsProduction()).To(BeFalse())
		})

		It("reads overrides from the environment", func() {
			setEnv("PORT", "8081")
			setEnv("APP_ENV", "production")
			setEnv("DB_CONNECT_TIMEOUT", "2s")
			setEnv("FRONTEND_URL", "https://a.example, https://b.example")

			cfg := LoadConfigFromEnv()

			Expect(cfg.Server.Port).To(Equal(8081))
			Expect(cfg.IsProduction()).To(BeTrue())
			Expect(cfg.Database.ConnectTimeout).To(Equal(2 * time.Second))
			Expect(cfg.Server.Origins()).To(Equal([]string{"https://a.example", "https://b.example"}))
		})

		It("ignores malformed numbers", func() {
			setEnv("DB_MAX_OPEN_CONNS", "many")

			Expect(LoadConfigFromEnv().Database.MaxOpenConns).To(Equal(20))
		})
	})

	Describe("Validate", func() {
		var cfg *Config

		BeforeEach(func() {
			cfg = LoadConfigFromEnv()
			cfg.App.Env = "development"
			cfg.Database.Source = "postgres://localhost:5432/payments"
		})

		It("accepts a complete configuration", func() {
			Expect(cfg.Validate()).To(Succeed())
		})

		It("requires a database source", func() {
			cfg.Database.Source = ""

			Expect(cfg.Validate()).To(MatchError(ContainSubstring("source is required")))
		})

		It("rejects an out of range port", func() {
			cfg.Server.Port = 70000

			Expect(cfg.Validate()).To(MatchError(ContainSubstring("invalid port")))
		})

		It("rejects more idle than open connections", func() {
			cfg.Database.MaxOpenConns = 2
			cfg.Database.MaxIdleConns = 5

			Expect(cfg.Validate()).To(MatchError(ContainSubstring("max_idle_conns")))
		})

		It("rejects an unknown environment", func() {
			cfg.App.Env = "staging"

			Expect(cfg.Validate()).To(MatchError(ContainSubstring("unknown env")))
		})

		It("collects every failing section", func() {
			cfg.App.Env = "staging"
			cfg.Observability.Metrics.Path = "metrics"

			err := cfg.Validate()
			Expect(err).To(MatchError(ContainSubstring("app config")))
			Expect(err).To(MatchError(ContainSubstring("observability config")))
		})
	})
})
