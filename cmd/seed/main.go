package main

import (
	"context"
	"log"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"fundraiser/internal/config"
	"fundraiser/internal/db"
	"fundraiser/internal/model"
	"fundraiser/internal/repository"
)

// seedCampaign is a demo campaign definition.
type seedCampaign struct {
	Title            string
	Goal             int64
	Duration         int
	Location         string
	ShortDescription string
	FullDescription  string
	CreatorName      string
	OrganizationType model.OrganizationType
}

var demoCampaigns = []seedCampaign{
	{
		Title:            "Clean Water for Dharan",
		Goal:             5000,
		Duration:         45,
		Location:         "Dharan",
		ShortDescription: "Bring safe drinking water to three hillside villages.",
		FullDescription:  "Funds cover pipe material, two storage tanks and the labor to connect three villages to the spring intake above Dharan.",
		CreatorName:      "Asha Rai",
		OrganizationType: model.OrgCommunity,
	},
	{
		Title:            "School Library Rebuild",
		Goal:             2500,
		Duration:         30,
		Location:         "Pokhara",
		ShortDescription: "Replace books and shelving lost to last year's flooding.",
		FullDescription:  "The school library lost most of its collection in the monsoon floods. We are restocking textbooks and storybooks for 400 students.",
		CreatorName:      "Bikash Gurung",
		OrganizationType: model.OrgNonprofit,
	},
	{
		Title:            "Mobile Health Camp",
		Goal:             8000,
		Duration:         60,
		Location:         "Mustang",
		ShortDescription: "A travelling clinic serving remote mountain settlements.",
		FullDescription:  "Covers medicine, fuel and staffing for a monthly health camp rotating through settlements that are a two-day walk from the nearest clinic.",
		CreatorName:      "Dr. Maya Thapa",
		OrganizationType: model.OrgIndividual,
	},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.Campaign{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	repo := repository.NewCampaignRepository(gormDB)
	ctx := context.Background()

	seeded, skipped := 0, 0
	for _, def := range demoCampaigns {
		if exists, err := campaignExists(gormDB, def.Title); err != nil {
			log.Fatalf("Failed to check campaign %q: %v", def.Title, err)
		} else if exists {
			skipped++
			continue
		}

		campaign := &model.Campaign{
			Title:            def.Title,
			Goal:             decimal.NewFromInt(def.Goal),
			Duration:         def.Duration,
			Location:         def.Location,
			ShortDescription: def.ShortDescription,
			FullDescription:  def.FullDescription,
			CreatorName:      def.CreatorName,
			OrganizationType: def.OrganizationType,
			IsActive:         true,
			Raised:           decimal.Zero,
		}
		if err := repo.Create(ctx, campaign); err != nil {
			log.Fatalf("Failed to seed campaign %q: %v", def.Title, err)
		}
		seeded++
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - New campaigns created: %d", seeded)
	log.Printf("  - Existing campaigns skipped: %d", skipped)
}

func campaignExists(gormDB *gorm.DB, title string) (bool, error) {
	var count int64
	if err := gormDB.Model(&model.Campaign{}).Where("title = ?", title).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
