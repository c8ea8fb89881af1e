package resource

import (
	featuresMiddleware "schoolerp_backend/internals/middlewares/features"

	"github.com/gofiber/fiber/v2"
)

type MountOptions struct {
	Feature string   // used in 403 messages
	Read    []string // roles allowed to read; empty = any authenticated user
	Write   []string // roles allowed to create/update/delete
	Create  []string // overrides Write for POST / when set
	Extra   func(g fiber.Router)
}

// Mount registers the standard routes under path. Fixed segments
// (/stats/summary, relation routes, extras) go before /:id so they are
// never captured as an id.
func Mount[T any, PT interface {
	*T
	Model
}](r fiber.Router, path string, ctl *Controller[T, PT], opt MountOptions) fiber.Router {
	feature := opt.Feature
	if feature == "" {
		feature = path
	}
	read := featuresMiddleware.RequireRoles(feature, opt.Read...)
	write := featuresMiddleware.RequireRoles(feature, opt.Write...)
	create := write
	if len(opt.Create) > 0 {
		create = featuresMiddleware.RequireRoles(feature, opt.Create...)
	}

	g := r.Group(path)
	g.Get("/", read, ctl.List)
	g.Post("/", create, ctl.Create)
	if ctl.Config.Stats != nil {
		g.Get("/stats/summary", read, ctl.Stats)
	}
	for _, rr := range ctl.Config.ByRelation {
		g.Get(rr.Path, read, ctl.ListBy(rr))
	}
	if opt.Extra != nil {
		opt.Extra(g)
	}
	g.Get("/:id", read, ctl.Get)
	g.Put("/:id", write, ctl.Update)
	g.Patch("/:id", write, ctl.Update)
	g.Delete("/:id", write, ctl.Delete)
	return g
}
