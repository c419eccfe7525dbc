package testhelpers

import (
	"fmt"

	"payproof/internal/db"
	"payproof/internal/models"

	"github.com/google/uuid"
	g "github.com/onsi/gomega"
	"gorm.io/gorm"
)

// NewSQLiteDB opens a private in-memory database with the payments table.
func NewSQLiteDB() *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())

	conn, err := db.InitDB(db.DriverSQLite, dsn, "silent")
	g.Expect(err).NotTo(g.HaveOccurred())
	g.Expect(conn.AutoMigrate(&models.Payment{})).To(g.Succeed())
	return conn
}

// CleanupDB empties the payments table and resets its id sequence.
func CleanupDB(conn *gorm.DB) {
	switch conn.Dialector.Name() {
	case "postgres":
		err := conn.Exec(`TRUNCATE TABLE "payments" RESTART IDENTITY CASCADE`).Error
		g.Expect(err).NotTo(g.HaveOccurred(), "Failed to truncate table: payments")
	default:
		g.Expect(conn.Exec(`DELETE FROM payments`).Error).To(g.Succeed())
		// sqlite_sequence only exists once an autoincrement row was written
		_ = conn.Exec(`DELETE FROM sqlite_sequence WHERE name = 'payments'`).Error
	}
}

// CloseDB releases the connection, which drops an in-memory database.
func CloseDB(conn *gorm.DB) {
	sqlDB, err := conn.DB()
	g.Expect(err).NotTo(g.HaveOccurred())
	g.Expect(sqlDB.Close()).To(g.Succeed())
}
