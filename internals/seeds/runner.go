package seeds

import (
	"context"
	"log"
	"time"

	"schoolerp_backend/internals/resource"
	users "schoolerp_backend/internals/seeds/users/auth"
)

func RunAllSeeds(be resource.Backend) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	//* Schools + accounts
	if err := users.SeedSchoolsFromJSON(ctx, be, "internals/seeds/data/demo_schools.json"); err != nil {
		log.Printf("❌ Seeding schools failed: %v", err)
	}
}
