package database

import (
	"fmt"
	"time"

	"iotreg/models"

	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func Init(dsn string) error {
	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return err
	}

	// Auto migrate the schema
	err = DB.AutoMigrate(&models.User{}, &models.Team{})
	if err != nil {
		return err
	}

	// Seed default admin if not exists
	if err := seedDefaultAdmin(); err != nil {
		return err
	}

	return nil
}

func seedDefaultAdmin() error {
	var count int64
	DB.Model(&models.User{}).Where("username = ?", "admin").Count(&count)
	if count > 0 {
		return nil
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := models.User{
		Username:           "admin",
		FullName:           "Administrator",
		PasswordHash:       string(hashedPassword),
		MustChangePassword: true,
	}

	result := DB.Create(&admin)
	if result.Error != nil {
		return result.Error
	}

	log.Info("Default admin user created (username: admin, password: admin)")
	return nil
}

var sampleSchools = []string{
	"SMK Negeri 1 Jakarta",
	"SMK Negeri 2 Bandung",
	"SMK Negeri 1 Surabaya",
	"SMK Negeri 3 Yogyakarta",
	"SMK Negeri 1 Semarang",
	"SMK Negeri 2 Medan",
	"SMK Negeri 1 Makassar",
	"SMK Negeri 2 Denpasar",
}

var sampleProjects = []string{
	"Smart Home Automation System",
	"IoT-Based Agriculture Monitoring",
	"Smart Traffic Management System",
	"Environmental Monitoring Dashboard",
	"Automated Parking System",
	"Smart Energy Management",
	"IoT Weather Station",
	"Smart Security System",
}

var sampleMajors = []string{
	"Teknik Komputer dan Jaringan (TKJ)",
	"Rekayasa Perangkat Lunak (RPL)",
	"Multimedia (MM)",
	"Teknik Elektronika Industri (TEI)",
	"Teknik Mekatronika",
	"Teknik Otomasi Industri (TOI)",
	"Sistem Informatika Jaringan dan Aplikasi (SIJA)",
	"Teknik Komputer dan Informatika (TKI)",
}

var sampleStatuses = []models.TeamStatus{
	models.StatusPending,
	models.StatusApproved,
	models.StatusRejected,
}

// SeedSampleTeams populates a fresh database with demo registrations so the
// admin dashboard has something to show. Does nothing once teams exist.
func SeedSampleTeams(n int) error {
	var count int64
	DB.Model(&models.Team{}).Count(&count)
	if count > 0 {
		return nil
	}

	now := time.Now()
	description := "An IoT project built for the competition. It combines low-cost sensors, " +
		"a microcontroller gateway and a cloud dashboard to collect, process and visualize " +
		"real-time measurements for the chosen problem domain."

	for i := 0; i < n; i++ {
		team := models.Team{
			TeamName:           fmt.Sprintf("Team Sample %02d", i+1),
			SchoolOrigin:       sampleSchools[i%len(sampleSchools)],
			Major:              sampleMajors[i%len(sampleMajors)],
			ProjectTitle:       sampleProjects[i%len(sampleProjects)],
			ProjectDescription: description,
			TeamMembers: datatypes.NewJSONSlice([]string{
				fmt.Sprintf("Member A%02d", i+1),
				fmt.Sprintf("Member B%02d", i+1),
				fmt.Sprintf("Member C%02d", i+1),
			}),
			ContactEmail:     fmt.Sprintf("team%02d@example.com", i+1),
			ContactPhone:     fmt.Sprintf("08123456%04d", i+1),
			Status:           sampleStatuses[i%len(sampleStatuses)],
			RegistrationDate: now.AddDate(0, 0, -i),
		}
		if err := DB.Create(&team).Error; err != nil {
			return err
		}
	}

	log.Infof("Seeded %d sample teams", n)
	return nil
}

func GetDB() *gorm.DB {
	return DB
}
