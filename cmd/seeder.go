package cmd

import (
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample data for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		sqlDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}

		db, err := initGorm(sqlDB)
		if err != nil {
			log.Fatalf("failed to init orm: %v", err)
		}

		if clearData {
			for _, table := range []string{"attendance_records", "users", "departments"} {
				if err := db.Exec("DELETE FROM " + table).Error; err != nil {
					log.Fatalf("failed to clear %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		seedDepartments(db)
		seedUsers(db)
		seedAttendance(db)
	},
}

var departmentNames = []string{
	"Engineering", "HR", "Sales", "Marketing", "Finance", "Operations", "Management",
}

func seedDepartments(db *gorm.DB) {
	for _, name := range departmentNames {
		var exists int
		if err := db.Raw("SELECT 1 FROM departments WHERE name = ?", name).Row().Scan(&exists); err == nil {
			continue
		}
		if err := db.Exec("INSERT INTO departments (name, description, is_active, created_at, updated_at) VALUES (?, ?, true, now(), now())", name, name+" department").Error; err != nil {
			log.Fatalf("failed to insert department %s: %v", name, err)
		}
	}
	fmt.Println("Seeded departments")
}

func seedUsers(db *gorm.DB) {
	password := "password123"
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

	seedUser(db, "Maya Manager", "manager@mail.com", "manager", "MGR001", "Management", string(hash))
	seedUser(db, "Andi Pratama", "andi@mail.com", "employee", "EMP001", "Engineering", string(hash))
	seedUser(db, "Budi Santoso", "budi@mail.com", "employee", "EMP002", "Engineering", string(hash))
	seedUser(db, "Citra Dewi", "citra@mail.com", "employee", "EMP003", "Sales", string(hash))
	seedUser(db, "Dina Lestari", "dina@mail.com", "employee", "EMP004", "HR", string(hash))
	seedUser(db, "Eko Wijaya", "eko@mail.com", "employee", "EMP005", "Finance", string(hash))

	fmt.Println("Seeded users (password:", password+")")
}

func seedUser(db *gorm.DB, name, email, role, employeeID, dept, hash string) {
	var exists int
	if err := db.Raw("SELECT 1 FROM users WHERE email = ?", email).Row().Scan(&exists); err == nil {
		fmt.Println("user already exists:", email)
		return
	}

	if err := db.Exec(
		"INSERT INTO users (name, email, password_hash, role, employee_id, department, is_active, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, true, now(), now())",
		name, email, hash, role, employeeID, dept,
	).Error; err != nil {
		log.Fatalf("failed to insert user %s: %v", email, err)
	}
	fmt.Println("Seeded user:", email)
}

// seedAttendance backfills the last 5 working days for every employee so
// the dashboards have something to show.
func seedAttendance(db *gorm.DB) {
	rows, err := db.Raw("SELECT id FROM users WHERE role = 'employee'").Rows()
	if err != nil {
		log.Fatalf("failed to list employees: %v", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			log.Fatalf("failed to scan employee id: %v", err)
		}
		ids = append(ids, id)
	}

	day := time.Now()
	seeded := 0
	for back := 0; seeded < 5; back++ {
		d := day.AddDate(0, 0, -back)
		if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			continue
		}
		seeded++

		date := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
		for i, id := range ids {
			var exists int
			if err := db.Raw("SELECT 1 FROM attendance_records WHERE user_id = ? AND date = ?", id, date).Row().Scan(&exists); err == nil {
				continue
			}

			// stagger arrivals so some rows come out late
			checkIn := date.Add(9*time.Hour + time.Duration(10+i*10)*time.Minute)
			checkOut := checkIn.Add(8 * time.Hour)
			status := "present"
			if checkIn.Hour() > 9 || (checkIn.Hour() == 9 && checkIn.Minute() > 30) {
				status = "late"
			}

			if err := db.Exec(
				"INSERT INTO attendance_records (user_id, date, check_in_time, check_out_time, status, total_hours, created_at, updated_at) VALUES (?, ?, ?, ?, ?, 8.0, now(), now())",
				id, date, checkIn, checkOut, status,
			).Error; err != nil {
				log.Fatalf("failed to insert attendance for user %d: %v", id, err)
			}
		}
	}

	fmt.Println("Seeded attendance for last 5 working days")
}
