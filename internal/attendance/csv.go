package attendance

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"
)

// CSVFilename is the attachment name for the report download.
const CSVFilename = "attendance_report.csv"

var csvHeader = []string{
	"Date", "EmployeeID", "EmployeeName", "Department",
	"CheckIn", "CheckOut", "TotalHours", "Status",
}

// notCheckedOut is the literal rendered for an open record's check-out cell.
const notCheckedOut = "Not Checked Out"

// ExportCSV streams the records matching the filter as a CSV report,
// newest first. Open records render "Not Checked Out" instead of a time.
func (s *Service) ExportCSV(w io.Writer, f Filter) error {
	records, err := s.repo.FindAll(f)
	if err != nil {
		s.logger.Error("csv export query failed", "error", err)
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	for _, r := range records {
		checkOut := notCheckedOut
		if r.CheckOutTime != nil {
			checkOut = r.CheckOutTime.Format(time.TimeOnly)
		}

		row := []string{
			r.Date.Format(time.DateOnly),
			r.EmployeeID,
			r.EmployeeName,
			r.Department,
			r.CheckInTime.Format(time.TimeOnly),
			checkOut,
			strconv.FormatFloat(r.TotalHours, 'f', 2, 64),
			r.Status,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
