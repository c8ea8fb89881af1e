// internals/helpers/report/rollbar.go
package report

import (
	"log"
	"os"

	"schoolerp_backend/internals/configs"

	"github.com/gofiber/fiber/v2"
	"github.com/rollbar/rollbar-go"
)

var enabled bool

// Init configures rollbar; reporting stays off without ROLLBAR_TOKEN.
func Init() {
	if configs.RollbarToken == "" {
		log.Println("⚠️ ROLLBAR_TOKEN not set, error reporting disabled")
		rollbar.SetEnabled(false)
		return
	}
	host, _ := os.Hostname()
	rollbar.SetToken(configs.RollbarToken)
	rollbar.SetEnvironment(configs.AppEnv)
	rollbar.SetServerHost(host)
	rollbar.SetCodeVersion(configs.GetEnv("APP_VERSION", "dev"))
	rollbar.SetEnabled(true)
	enabled = true
	log.Println("✅ Rollbar error reporting enabled")
}

// Error reports err with the request route as context.
func Error(c *fiber.Ctx, tag string, err error) {
	if !enabled || err == nil {
		return
	}
	extras := map[string]interface{}{"tag": tag}
	if c != nil {
		extras["method"] = c.Method()
		extras["path"] = c.Path()
		if rid, ok := c.Locals("request_id").(string); ok {
			extras["request_id"] = rid
		}
	}
	rollbar.Error(err, extras)
}

// Panic reports a recovered panic value.
func Panic(v interface{}) {
	if !enabled {
		return
	}
	rollbar.Critical(v)
}

func Close() {
	if enabled {
		rollbar.Wait()
	}
}
