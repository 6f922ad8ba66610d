package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/ozgundoganbatuhan-lang/asansor/internal/model"
	"github.com/ozgundoganbatuhan-lang/asansor/pkg/database"
	"github.com/ozgundoganbatuhan-lang/asansor/pkg/logger"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create a demo organization with sample data",
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logger.GetLogger()

		if _, err := database.InitDB(&conf.DB); err != nil {
			return err
		}
		if err := database.MigrateModels(model.AllModels()...); err != nil {
			return err
		}

		db := database.GetDB()

		var existing int64
		db.Model(&model.Organization{}).Where("slug = ?", "demo-asansor").Count(&existing)
		if existing > 0 {
			log.Info("Demo organization already seeded, nothing to do")
			return nil
		}

		hash, err := bcrypt.GenerateFromPassword([]byte("demo1234"), bcrypt.DefaultCost)
		if err != nil {
			return err
		}

		now := time.Now()
		err = db.Transaction(func(tx *gorm.DB) error {
			org := model.Organization{
				Name:        "Demo Asansör Bakım",
				Slug:        "demo-asansor",
				Vertical:    model.VerticalElevator,
				PlanTier:    model.PlanTrial,
				TrialEndsAt: now.AddDate(0, 0, conf.Trial.Days),
			}
			if err := tx.Create(&org).Error; err != nil {
				return err
			}

			user := model.User{
				OrganizationID: org.ID,
				Name:           "Demo Kullanıcı",
				Email:          "demo@servisim.app",
				PasswordHash:   string(hash),
				Role:           model.RoleOwner,
			}
			if err := tx.Create(&user).Error; err != nil {
				return err
			}

			customer := model.Customer{
				OrganizationID: org.ID,
				Name:           "Gül Apartmanı Yönetimi",
				ContactName:    "Ahmet Yılmaz",
				Phone:          "0532 111 22 33",
				Address:        "Atatürk Cad. No:12, Kadıköy/İstanbul",
			}
			if err := tx.Create(&customer).Error; err != nil {
				return err
			}

			asset := model.Asset{
				OrganizationID:  org.ID,
				CustomerID:      customer.ID,
				Name:            "A Blok Asansör",
				Category:        "İnsan Asansörü",
				SerialNumber:    "ASN-2020-1147",
				Stops:           8,
				CapacityKg:      630,
				ControllerBrand: "Arkel",
				InstallYear:     2020,
			}
			if err := tx.Create(&asset).Error; err != nil {
				return err
			}

			technician := model.Technician{
				OrganizationID: org.ID,
				Name:           "Mehmet Demir",
				Initials:       "MD",
				Phone:          "0533 444 55 66",
				Zone:           "Anadolu Yakası",
				Status:         "Aktif",
			}
			if err := tx.Create(&technician).Error; err != nil {
				return err
			}

			parts := []model.Part{
				{OrganizationID: org.ID, Name: "Kapı Fişi", Category: "Kapı", Price: 45000, Stock: 12, MinStock: 4},
				{OrganizationID: org.ID, Name: "Buton Takımı", Category: "Kabin", Price: 120000, Stock: 3, MinStock: 2},
				{OrganizationID: org.ID, Name: "Halat 8mm (metre)", Category: "Mekanik", Unit: "Metre", Price: 8500, Stock: 200, MinStock: 50},
			}
			for i := range parts {
				if err := tx.Create(&parts[i]).Error; err != nil {
					return err
				}
			}

			plan := model.MaintenancePlan{
				OrganizationID: org.ID,
				AssetID:        asset.ID,
				PeriodMonths:   1,
				NextDueAt:      model.NextDue(now, 1),
				Notes:          "Aylık periyodik bakım",
			}
			if err := tx.Create(&plan).Error; err != nil {
				return err
			}

			order := model.WorkOrder{
				OrganizationID: org.ID,
				CustomerID:     customer.ID,
				AssetID:        &asset.ID,
				TechnicianID:   &technician.ID,
				Code:           fmt.Sprintf("WO-%02d-%05d", now.Year()%100, 1),
				Type:           model.WorkOrderPeriodicMaintenance,
				Status:         model.WorkOrderPending,
				Priority:       "Normal",
				Note:           "İlk periyodik bakım",
			}
			return tx.Create(&order).Error
		})
		if err != nil {
			return err
		}

		log.Info("Demo organization seeded",
			zap.String("slug", "demo-asansor"),
			zap.String("login", "demo@servisim.app / demo1234"))
		return nil
	},
}
