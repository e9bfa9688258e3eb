package seeders

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/shashiranjanraj/catalog-ingest/app/models"
	"github.com/shashiranjanraj/catalog-ingest/app/services"
)

func init() {
	Register("genders", SeedGenders)
}

var genderDetails = map[services.Gender][2]string{
	services.GenderFemale: {"Women", "Products for women"},
	services.GenderKids:   {"Kids", "Products for boys and girls"},
	services.GenderMale:   {"Men", "Products for men"},
	services.GenderBaby:   {"Baby", "Products for babies"},
	services.GenderUnisex: {"Unisex", "Products for everyone"},
	services.GenderNone:   {"Other", "Gender could not be determined"},
}

// SeedGenders writes the gender rows with the exact ids the ingestion
// pipeline assumes. Running it again repairs drifted names.
func SeedGenders(db *gorm.DB) error {
	rows := make([]models.Gender, 0, len(services.GenderIDs))
	for _, g := range services.Genders() {
		d := genderDetails[g]
		rows = append(rows, models.Gender{
			ID:          services.GenderIDs[g],
			Name:        string(g),
			PrettyName:  d[0],
			Description: d[1],
		})
	}

	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "prettyName", "description", "updatedAt"}),
	}).Create(&rows).Error
}
