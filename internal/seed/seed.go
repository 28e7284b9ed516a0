package seed

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/vishwajithsandaru/govhack-2025-factshield/app"
	"github.com/vishwajithsandaru/govhack-2025-factshield/domain/core"
	"github.com/vishwajithsandaru/govhack-2025-factshield/internal"
	"github.com/vishwajithsandaru/govhack-2025-factshield/internal/errors"
	"github.com/vishwajithsandaru/govhack-2025-factshield/models"
)

type demoUser struct {
	name         string
	email        string
	organization string
	role         models.Role
	password     string
}

type demoClaim struct {
	text        string
	status      models.ClaimStatus
	explanation string
	truthCount  int
	falseCount  int
}

// Demo passwords; not for real deployments.
var demoUsers = []demoUser{
	{"Alice Johnson", "alice@example.org", "TruthCheck Org", models.RoleSeniorFactChecker, "alice-pass"},
	{"Bob Smith", "bob@example.org", "NewsTrust", models.RoleFactChecker, "bob-pass"},
	{"Clara Martinez", "clara@example.org", "FactFinders Inc.", models.RoleFactChecker, "clara-pass"},
}

var demoClaims = []demoClaim{
	{"In 2012, New Zealand exported 1,123,294 tonnes of whole milk powder.", models.StatusTrue, "Matches export dataset", 3, 0},
	{"In 2014, export revenue from cheese was 5,575 million $NZ.", models.StatusTrue, "Dataset confirms value", 2, 0},
	{"Average export price for butter in 2013 was 3,500 $NZ/tonne.", models.StatusTrue, "Consistent with records", 1, 0},
	{"New Zealand exported over 1 million tonnes of whole milk powder in 2013.", models.StatusTrue, "Slightly above 1 million according to stats", 1, 0},
	{"Casein export revenue in 2012 exceeded 1,000 million $NZ.", models.StatusTrue, "Dataset shows above threshold", 2, 0},
	{"In 2015, cheese exports from New Zealand exceeded 5 million tonnes.", models.StatusFalse, "Dataset shows far lower volume", 0, 4},
	{"New Zealand exported 10 million tonnes of butter in 2014.", models.StatusFalse, "Exports never reached this level", 0, 2},
	{"Skim milk powder exports in 2013 were less than 100 tonnes.", models.StatusFalse, "Dataset shows much higher figures", 0, 3},
	{"Export revenue from casein in 2014 was 50 million $NZ.", models.StatusFalse, "Dataset shows revenue in the hundreds of millions", 0, 3},
	{"In 2012, butter exports accounted for 90% of all dairy exports.", models.StatusFalse, "Whole milk powder dominated exports, not butter", 0, 2},
	{"New Zealand exported 750,000 tonnes of skim milk powder in 2014.", models.StatusEscalated, "Conflicting numbers in dataset", 0, 0},
	{"Average export price of cheese in 2013 was exactly 4,000 $NZ/tonne.", models.StatusEscalated, "Close to dataset values but needs verification", 0, 0},
	{"Export revenue from whole milk powder in 2015 was 8,000 million $NZ.", models.StatusEscalated, "Value may be slightly lower or higher, requires review", 0, 0},
	{"In 2014, butter exports reached exactly 500,000 tonnes.", models.StatusEscalated, "Dataset shows similar but not exact number", 0, 0},
	{"Casein exports in 2013 were the largest among dairy categories.", models.StatusEscalated, "Dataset suggests whole milk powder was larger", 0, 0},
}

// Run inserts the demo fact-checkers and sample claims. It is
// idempotent: users are keyed by email and claims by their text, so
// repeated startups insert nothing new.
func Run(ctx context.Context, db *sqlx.DB, logger *internal.Logger) error {
	if err := seedUsers(ctx, db); err != nil {
		return errors.Wrap(err, "failed to seed fact-checkers")
	}
	if err := seedClaims(ctx, db); err != nil {
		return errors.Wrap(err, "failed to seed claims")
	}
	logger.Info("demo data seeded: %d fact-checkers, %d claims", len(demoUsers), len(demoClaims))
	return nil
}

func seedUsers(ctx context.Context, db *sqlx.DB) error {
	for _, u := range demoUsers {
		var exists bool
		if err := db.GetContext(ctx, &exists,
			`SELECT EXISTS (SELECT 1 FROM fact_checker_users WHERE email = $1)`, u.email); err != nil {
			return err
		}
		if exists {
			continue
		}

		hash, err := app.HashPassword(u.password)
		if err != nil {
			return err
		}
		_, err = db.ExecContext(ctx, `
			INSERT INTO fact_checker_users (id, name, email, organization, role, password_hash)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			core.NewID(), u.name, u.email, u.organization, u.role, hash)
		if err != nil {
			return err
		}
	}
	return nil
}

func seedClaims(ctx context.Context, db *sqlx.DB) error {
	for _, c := range demoClaims {
		var exists bool
		if err := db.GetContext(ctx, &exists,
			`SELECT EXISTS (SELECT 1 FROM claims WHERE claim_text = $1)`, c.text); err != nil {
			return err
		}
		if exists {
			continue
		}

		_, err := db.ExecContext(ctx, `
			INSERT INTO claims (id, claim_text, status, explanation, truth_count, false_count)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			core.NewID(), c.text, c.status, c.explanation, c.truthCount, c.falseCount)
		if err != nil {
			return err
		}
	}
	return nil
}
