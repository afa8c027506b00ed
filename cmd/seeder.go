package cmd

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample organization data for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		sqlDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer sqlDB.Close()

		db, err := initGorm(sqlDB)
		if err != nil {
			log.Fatalf("failed to init orm: %v", err)
		}

		if clearData {
			clearTables(db)
		}

		periodID := ensurePeriod(db, 2024, "Kabinet Sinergi 2024")
		prevPeriodID := ensurePeriod(db, 2023, "Kabinet Karsa 2023")

		kominfoID := ensureDepartment(db, "Komunikasi dan Informasi", "kominfo", "BE", 2024)
		humasID := ensureDepartment(db, "Hubungan Masyarakat", "humas", "BE", 2024)
		komisiID := ensureDepartment(db, "Komisi Aspirasi", "komaspi", "DP", 2024)
		oldKominfoID := ensureDepartment(db, "Komunikasi dan Informasi", "kominfo", "BE", 2023)

		ensureProgram(db, kominfoID, "Pelatihan desain grafis untuk anggota baru")
		ensureProgram(db, kominfoID, "Pengelolaan media sosial organisasi")
		ensureProgram(db, kominfoID, "Dokumentasi kegiatan internal")
		ensureProgram(db, komisiID, "Jaring aspirasi mahasiswa semester ganjil")

		ketuaID := ensurePosition(db, "ketua", &kominfoID)
		staffID := ensurePosition(db, "staff", &kominfoID)
		humasKetuaID := ensurePosition(db, "ketua", &humasID)
		adminID := ensurePosition(db, "administrator", nil)

		budiID := ensureUser(db, "budi", "Budi Santoso")
		sitiID := ensureUser(db, "siti", "Siti Rahma")
		agusID := ensureUser(db, "agus", "Agus Wijaya")

		link(db, `"_DepartmentToUser"`, "department_id", kominfoID, budiID)
		link(db, `"_DepartmentToUser"`, "department_id", kominfoID, sitiID)
		link(db, `"_DepartmentToUser"`, "department_id", humasID, agusID)
		link(db, `"_DepartmentToUser"`, "department_id", oldKominfoID, budiID)

		link(db, `"_PeriodToUser"`, "period_id", periodID, budiID)
		link(db, `"_PeriodToUser"`, "period_id", periodID, sitiID)
		link(db, `"_PeriodToUser"`, "period_id", periodID, agusID)
		link(db, `"_PeriodToUser"`, "period_id", prevPeriodID, budiID)

		link(db, `"_PositionToUser"`, "position_id", ketuaID, budiID)
		link(db, `"_PositionToUser"`, "position_id", staffID, sitiID)
		link(db, `"_PositionToUser"`, "position_id", humasKetuaID, agusID)
		link(db, `"_PositionToUser"`, "position_id", adminID, budiID)

		newsTagID := ensureTag(db, "berita", "berita")
		otherTagID := ensureTag(db, "pengumuman", "pengumuman")

		publishedAt := time.Now().Add(-48 * time.Hour)
		postID := ensurePost(db, budiID, "Pelantikan Pengurus Baru", "pelantikan-pengurus-baru", &publishedAt)
		draftID := ensurePost(db, sitiID, "Draft Laporan Tahunan", "draft-laporan-tahunan", nil)

		link(db, `"_PostToPostTag"`, "post_id", postID, newsTagID, "post_tag_id")
		link(db, `"_PostToPostTag"`, "post_id", draftID, newsTagID, "post_tag_id")
		link(db, `"_PostToPostTag"`, "post_id", postID, otherTagID, "post_tag_id")

		fmt.Println("Seed completed")
	},
}

func clearTables(db *gorm.DB) {
	tables := []string{
		`"_PostToPostTag"`, `"_PositionToUser"`, `"_DepartmentToUser"`, `"_PeriodToUser"`,
		"social_medias", "posts", "post_tags", "programs", "positions",
		"departments", "periods", "users",
	}
	for _, t := range tables {
		if err := db.Exec("DELETE FROM " + t).Error; err != nil {
			log.Fatalf("failed to clear %s: %v", t, err)
		}
	}
	fmt.Println("Cleared existing data")
}

func ensurePeriod(db *gorm.DB, year int, name string) string {
	var id string
	if err := db.Raw("SELECT id FROM periods WHERE year = ?", year).Row().Scan(&id); err == nil {
		return id
	}
	id = uuid.NewString()
	if err := db.Exec(
		"INSERT INTO periods (id, logo, name, year, created_at, updated_at) VALUES (?, ?, ?, ?, now(), now())",
		id, "https://cdn.example.org/logo.png", name, year,
	).Error; err != nil {
		log.Fatalf("failed to insert period %d: %v", year, err)
	}
	return id
}

func ensureDepartment(db *gorm.DB, name, acronym, deptType string, year int) string {
	var id string
	if err := db.Raw(
		"SELECT id FROM departments WHERE acronym = ? AND period_year = ?", acronym, year,
	).Row().Scan(&id); err == nil {
		return id
	}
	id = uuid.NewString()
	if err := db.Exec(
		"INSERT INTO departments (id, name, acronym, type, period_year, created_at, updated_at) VALUES (?, ?, ?, ?, ?, now(), now())",
		id, name, acronym, deptType, year,
	).Error; err != nil {
		log.Fatalf("failed to insert department %s: %v", acronym, err)
	}
	return id
}

func ensureProgram(db *gorm.DB, departmentID, content string) {
	var exists int
	if err := db.Raw(
		"SELECT 1 FROM programs WHERE department_id = ? AND content = ?", departmentID, content,
	).Row().Scan(&exists); err == nil {
		return
	}
	if err := db.Exec(
		"INSERT INTO programs (id, content, department_id) VALUES (?, ?, ?)",
		uuid.NewString(), content, departmentID,
	).Error; err != nil {
		log.Fatalf("failed to insert program: %v", err)
	}
}

func ensurePosition(db *gorm.DB, name string, departmentID *string) string {
	var id string
	var err error
	if departmentID != nil {
		err = db.Raw("SELECT id FROM positions WHERE name = ? AND department_id = ?", name, *departmentID).Row().Scan(&id)
	} else {
		err = db.Raw("SELECT id FROM positions WHERE name = ? AND department_id IS NULL", name).Row().Scan(&id)
	}
	if err == nil {
		return id
	}
	id = uuid.NewString()
	if err := db.Exec(
		"INSERT INTO positions (id, name, department_id, created_at, updated_at) VALUES (?, ?, ?, now(), now())",
		id, name, departmentID,
	).Error; err != nil {
		log.Fatalf("failed to insert position %s: %v", name, err)
	}
	return id
}

func ensureUser(db *gorm.DB, username, name string) string {
	var id string
	if err := db.Raw("SELECT id FROM users WHERE username = ?", username).Row().Scan(&id); err == nil {
		return id
	}
	id = uuid.NewString()
	if err := db.Exec(
		"INSERT INTO users (id, name, email, username, role, created_at, updated_at) VALUES (?, ?, ?, ?, 'member', now(), now())",
		id, name, username+"@mail.com", username,
	).Error; err != nil {
		log.Fatalf("failed to insert user %s: %v", username, err)
	}
	return id
}

func ensureTag(db *gorm.DB, title, slug string) string {
	var id string
	if err := db.Raw("SELECT id FROM post_tags WHERE title = ?", title).Row().Scan(&id); err == nil {
		return id
	}
	id = uuid.NewString()
	if err := db.Exec(
		"INSERT INTO post_tags (id, title, slug, created_at, updated_at) VALUES (?, ?, ?, now(), now())",
		id, title, slug,
	).Error; err != nil {
		log.Fatalf("failed to insert tag %s: %v", title, err)
	}
	return id
}

func ensurePost(db *gorm.DB, authorID, title, slug string, publishedAt *time.Time) string {
	var id string
	if err := db.Raw("SELECT id FROM posts WHERE slug = ? AND author_id = ?", slug, authorID).Row().Scan(&id); err == nil {
		return id
	}
	id = uuid.NewString()
	if err := db.Exec(
		"INSERT INTO posts (id, author_id, title, meta_title, slug, content, raw_html, published_at, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, now(), now())",
		id, authorID, title, title, slug, "Isi lengkap "+title, "<p>Isi lengkap "+title+"</p>", publishedAt,
	).Error; err != nil {
		log.Fatalf("failed to insert post %s: %v", slug, err)
	}
	return id
}

// link inserts a join row if absent. The second column defaults to
// user_id; pass an override for posts to tags.
func link(db *gorm.DB, table, leftCol, leftID, rightID string, rightColOverride ...string) {
	rightCol := "user_id"
	if len(rightColOverride) > 0 {
		rightCol = rightColOverride[0]
	}
	var exists int
	query := fmt.Sprintf("SELECT 1 FROM %s WHERE %s = ? AND %s = ?", table, leftCol, rightCol)
	if err := db.Raw(query, leftID, rightID).Row().Scan(&exists); err == nil {
		return
	}
	insert := fmt.Sprintf("INSERT INTO %s (%s, %s) VALUES (?, ?)", table, leftCol, rightCol)
	if err := db.Exec(insert, leftID, rightID).Error; err != nil {
		log.Fatalf("failed to link %s: %v", table, err)
	}
}
