package main

import (
	"errors"

	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/focodev/site/backend/internal/config"
	"github.com/focodev/site/backend/internal/database"
	"github.com/focodev/site/backend/internal/logger"
	"github.com/focodev/site/backend/internal/models"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.Log().WithError(err).Fatal("load config")
	}
	logger.Init(cfg.Debug, nil)
	log := logger.Component("seed")

	db, err := database.Connect(cfg)
	if err != nil {
		log.WithError(err).Fatal("connect database")
	}
	if err := database.Migrate(db); err != nil {
		log.WithError(err).Fatal("migrate database")
	}
	log.Info("Database migrated")

	created, err := seedAdmin(db, cfg.Admin)
	if err != nil {
		log.WithError(err).Fatal("seed admin")
	}
	if created {
		log.WithField("email", cfg.Admin.Email).Info("Admin user created")
	} else {
		log.WithField("email", cfg.Admin.Email).Info("Admin user already exists")
	}

	if err := seedSingletons(db); err != nil {
		log.WithError(err).Fatal("seed singletons")
	}
	log.Info("Seed complete")
}

// seedAdmin creates the bootstrap administrator unless the email exists.
func seedAdmin(db *gorm.DB, admin config.AdminSeed) (bool, error) {
	var existing models.User
	err := db.Where("email = ?", models.NormalizeEmail(admin.Email)).First(&existing).Error
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	user := models.User{Name: admin.Name, Email: admin.Email, Role: models.RoleAdmin}
	if err := user.SetPassword(admin.Password); err != nil {
		return false, err
	}
	return true, db.Create(&user).Error
}

// seedSingletons writes default company info and banner only when absent.
func seedSingletons(db *gorm.DB) error {
	company := models.CompanyInfo{
		ID:        models.CompanyInfoKey,
		Name:      "FocoDev",
		Email:     "contato@focodev.com",
		AboutText: "Desenvolvimento de sites e sistemas sob medida.",
	}
	if err := db.Where(models.CompanyInfo{ID: models.CompanyInfoKey}).Attrs(company).FirstOrCreate(&models.CompanyInfo{}).Error; err != nil {
		return err
	}

	banner := models.HomeBanner{
		ID:       models.HomeBannerKey,
		Title:    "Transformamos ideias em produtos digitais",
		Subtitle: "Sites, sistemas e aplicativos para o seu negócio",
		CTAText:  "Fale conosco",
		CTALink:  "/contato",
	}
	return db.Where(models.HomeBanner{ID: models.HomeBannerKey}).Attrs(banner).FirstOrCreate(&models.HomeBanner{}).Error
}
