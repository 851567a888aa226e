package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/fajarnugraha/cetakin-backend/pkg/config"
	"github.com/fajarnugraha/cetakin-backend/pkg/db"
	"github.com/fajarnugraha/cetakin-backend/pkg/db/models"
	"github.com/fajarnugraha/cetakin-backend/pkg/enums"
	"github.com/fajarnugraha/cetakin-backend/pkg/logger"
)

type seedProduct struct {
	name        string
	category    enums.ProductCategory
	description string
	basePrice   string
	unit        string
	materials   []seedMaterial
	finishings  []seedFinishing
}

type seedMaterial struct {
	name       string
	multiplier string
}

type seedFinishing struct {
	name  string
	price string
}

var catalogSeed = []seedProduct{
	{
		name:        "Spanduk Banner",
		category:    enums.ProductCategoryBanner,
		description: "Cetak spanduk outdoor per meter persegi",
		basePrice:   "20000",
		unit:        "m2",
		materials: []seedMaterial{
			{name: "Flexi China 280gr", multiplier: "1.0"},
			{name: "Flexi Korea 340gr", multiplier: "1.2"},
			{name: "Albatros", multiplier: "1.5"},
		},
		finishings: []seedFinishing{
			{name: "Tanpa Finishing", price: "0"},
			{name: "Selongsong", price: "3000"},
			{name: "Mata Ayam", price: "5000"},
		},
	},
	{
		name:        "Stiker Vinyl",
		category:    enums.ProductCategorySticker,
		description: "Stiker vinyl per lembar A3+ atau potong ukuran",
		basePrice:   "25000",
		unit:        "lembar",
		materials: []seedMaterial{
			{name: "Vinyl Glossy", multiplier: "1.0"},
			{name: "Vinyl Doff", multiplier: "1.1"},
			{name: "Vinyl Transparan", multiplier: "1.3"},
		},
		finishings: []seedFinishing{
			{name: "Tanpa Cutting", price: "0"},
			{name: "Kiss Cut", price: "2000"},
			{name: "Laminasi", price: "3000"},
		},
	},
	{
		name:        "Kartu Nama",
		category:    enums.ProductCategoryStandard,
		description: "Kartu nama per box isi 100",
		basePrice:   "30000",
		unit:        "box",
		materials: []seedMaterial{
			{name: "Art Carton 260gr", multiplier: "1.0"},
			{name: "Mohawk Eggshell", multiplier: "1.5"},
		},
		finishings: []seedFinishing{
			{name: "Tanpa Laminasi", price: "0"},
			{name: "Laminasi Doff", price: "5000"},
			{name: "Laminasi Glossy", price: "5000"},
		},
	},
	{
		name:        "UV Printing",
		category:    enums.ProductCategoryStandard,
		description: "Cetak UV di media kaku",
		basePrice:   "45000",
		unit:        "pcs",
		materials: []seedMaterial{
			{name: "Akrilik 2mm", multiplier: "1.0"},
			{name: "Akrilik 3mm", multiplier: "1.3"},
		},
		finishings: []seedFinishing{
			{name: "Tanpa Finishing", price: "0"},
			{name: "Doff Coating", price: "4000"},
		},
	},
}

func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "seed"})

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logg.Error(ctx, "failed to load config", err)
		os.Exit(1)
	}

	dbClient, err := db.New(ctx, cfg.DB, cfg.FeatureFlags.UseSQLite, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer dbClient.Close()

	var count int64
	if err := dbClient.DB().WithContext(ctx).Model(&models.Product{}).Count(&count).Error; err != nil {
		logg.Error(ctx, "failed to inspect catalog", err)
		os.Exit(1)
	}
	if count > 0 {
		logg.Info(logg.WithField(ctx, "products", count), "catalog already seeded, nothing to do")
		return
	}

	for _, seed := range catalogSeed {
		description := seed.description
		product := models.Product{
			Name:        seed.name,
			Category:    seed.category,
			Description: &description,
			BasePrice:   decimal.RequireFromString(seed.basePrice),
			Unit:        seed.unit,
			IsActive:    true,
		}
		for _, m := range seed.materials {
			product.Materials = append(product.Materials, models.Material{
				Name:            m.name,
				PriceMultiplier: decimal.RequireFromString(m.multiplier),
				IsActive:        true,
			})
		}
		for _, f := range seed.finishings {
			product.Finishings = append(product.Finishings, models.Finishing{
				Name:            f.name,
				AdditionalPrice: decimal.RequireFromString(f.price),
				IsActive:        true,
			})
		}

		if err := dbClient.DB().WithContext(ctx).Create(&product).Error; err != nil {
			logg.Error(logg.WithField(ctx, "product", seed.name), "failed to seed product", err)
			os.Exit(1)
		}
		logg.Info(logg.WithField(ctx, "product", seed.name), "seeded product")
	}

	logg.Info(ctx, "catalog seed completed")
}
