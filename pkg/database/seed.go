package database

import (
	"context"
	"fmt"

	"github.com/ufukozendev/noobgg-sub002/internal/model"
	"github.com/ufukozendev/noobgg-sub002/pkg/logger"
	"gorm.io/gorm"
)

// DefaultPlatforms are the platforms present on a fresh install
var DefaultPlatforms = []string{"PC", "PlayStation 5", "Xbox Series X|S", "Nintendo Switch", "Mobile"}

// DefaultLanguages maps language code to display name
var DefaultLanguages = []struct {
	Code string
	Name string
}{
	{Code: "en", Name: "English"},
	{Code: "tr", Name: "Türkçe"},
	{Code: "de", Name: "Deutsch"},
	{Code: "fr", Name: "Français"},
	{Code: "es", Name: "Español"},
}

// Seed inserts the reference catalog. Rows that already exist are left alone,
// so running it twice is harmless.
func Seed(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		created := 0
		for _, name := range DefaultPlatforms {
			res := tx.Where(model.Platform{Name: name}).FirstOrCreate(&model.Platform{})
			if res.Error != nil {
				return fmt.Errorf("seed platform %q: %w", name, res.Error)
			}
			created += int(res.RowsAffected)
		}

		for _, l := range DefaultLanguages {
			res := tx.Where(model.Language{Code: l.Code}).
				Attrs(model.Language{Name: l.Name}).
				FirstOrCreate(&model.Language{})
			if res.Error != nil {
				return fmt.Errorf("seed language %q: %w", l.Code, res.Error)
			}
			created += int(res.RowsAffected)
		}

		logger.InfoWithContext(ctx, "Reference data seeded").Int("created", created).Log()
		return nil
	})
}
