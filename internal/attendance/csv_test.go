package attendance_test

import (
	"bytes"
	"encoding/csv"
	"log/slog"
	"os"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/attendance-management/internal/attendance"
	"github.com/frahmantamala/attendance-management/internal/user"
)

var _ = Describe("ExportCSV", func() {
	var (
		svc  *attendance.Service
		repo *mockAttendanceRepo
	)

	BeforeEach(func() {
		repo = newMockAttendanceRepo()
		repo.employees[1] = user.User{ID: 1, Name: "Andi Pratama", EmployeeID: "EMP001", Department: "Engineering"}
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		svc = attendance.NewService(repo, &mockDirectory{}, attendance.DefaultPolicy(), logger)
	})

	It("writes the fixed header row", func() {
		var buf bytes.Buffer
		Expect(svc.ExportCSV(&buf, attendance.Filter{})).To(Succeed())

		rows, err := csv.NewReader(&buf).ReadAll()
		Expect(err).NotTo(HaveOccurred())
		Expect(rows).To(HaveLen(1))
		Expect(rows[0]).To(Equal([]string{
			"Date", "EmployeeID", "EmployeeName", "Department",
			"CheckIn", "CheckOut", "TotalHours", "Status",
		}))
	})

	It("round-trips a record without a check-out", func() {
		day := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)
		checkIn := day.Add(9*time.Hour + 15*time.Minute)
		Expect(repo.Create(&attendance.Record{
			UserID:      1,
			Date:        day,
			CheckInTime: checkIn,
			Status:      attendance.StatusPresent,
		})).To(Succeed())

		var buf bytes.Buffer
		Expect(svc.ExportCSV(&buf, attendance.Filter{})).To(Succeed())

		rows, err := csv.NewReader(&buf).ReadAll()
		Expect(err).NotTo(HaveOccurred())
		Expect(rows).To(HaveLen(2))

		row := rows[1]
		Expect(row[0]).To(Equal("2026-03-02"))
		Expect(row[1]).To(Equal("EMP001"))
		Expect(row[2]).To(Equal("Andi Pratama"))
		Expect(row[3]).To(Equal("Engineering"))
		Expect(row[4]).To(Equal("09:15:00"))
		Expect(row[5]).To(Equal("Not Checked Out"))
		Expect(row[6]).To(Equal("0.00"))
		Expect(row[7]).To(Equal("present"))
	})

	It("renders the check-out time and hours for a closed record", func() {
		day := time.Date(2026, time.March, 3, 0, 0, 0, 0, time.UTC)
		checkIn := day.Add(9 * time.Hour)
		checkOut := checkIn.Add(8 * time.Hour)
		Expect(repo.Create(&attendance.Record{
			UserID:       1,
			Date:         day,
			CheckInTime:  checkIn,
			CheckOutTime: &checkOut,
			Status:       attendance.StatusPresent,
			TotalHours:   8,
		})).To(Succeed())

		var buf bytes.Buffer
		Expect(svc.ExportCSV(&buf, attendance.Filter{})).To(Succeed())

		rows, err := csv.NewReader(&buf).ReadAll()
		Expect(err).NotTo(HaveOccurred())
		Expect(rows[1][5]).To(Equal("17:00:00"))
		Expect(rows[1][6]).To(Equal("8.00"))
	})
})
