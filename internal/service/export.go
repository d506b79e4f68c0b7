package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/orderspot/connecthost-api/internal/repository"
)

var ErrUnsupportedFormat = errors.New("invalid format (use csv or xlsx)")

const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

var exportHeader = []string{
	"ID", "Date", "Status", "Location", "Item", "Client", "Currency", "Total", "Paid", "Balance",
}

// Export is a rendered file ready to be sent.
type Export struct {
	Filename    string
	ContentType string
	Data        []byte
}

type ExportService struct {
	orders   OrderFinder
	enricher *Enricher
	now      func() time.Time
}

func NewExportService(orders OrderFinder, enricher *Enricher) *ExportService {
	return &ExportService{
		orders:   orders,
		enricher: enricher,
		now:      time.Now,
	}
}

// ExportOrders renders every order of a host, optionally filtered by
// repository filter statuses, as CSV or XLSX.
func (s *ExportService) ExportOrders(ctx context.Context, f repository.OrderFilter, format string) (Export, error) {
	if format == "" {
		format = FormatCSV
	}
	if format == "excel" {
		format = FormatXLSX
	}
	if format != FormatCSV && format != FormatXLSX {
		return Export{}, ErrUnsupportedFormat
	}

	orders, err := s.orders.Find(ctx, f)
	if err != nil {
		return Export{}, fmt.Errorf("s.orders.Find -> %w", err)
	}

	enriched, err := s.enricher.Orders(ctx, orders)
	if err != nil {
		return Export{}, fmt.Errorf("s.enricher.Orders -> %w", err)
	}

	rows := make([][]string, 0, len(enriched))
	for _, o := range enriched {
		rows = append(rows, []string{
			strconv.FormatUint(uint64(o.ID), 10),
			o.DateHeure.Format("2006-01-02 15:04"),
			string(o.Status),
			o.LocationName,
			o.ServiceName,
			o.ClientDisplayName,
			o.CurrencySymbol,
			decimalCell(o.PrixTotal.Valid, o.PrixTotal.Decimal.StringFixed(2)),
			decimalCell(o.MontantPaye.Valid, o.MontantPaye.Decimal.StringFixed(2)),
			decimalCell(o.SoldeDu.Valid, o.SoldeDu.Decimal.StringFixed(2)),
		})
	}

	suffix := fmt.Sprintf("host%d_%s", f.HostID, s.now().Format("20060102"))
	if format == FormatXLSX {
		data, err := ordersXLSX(rows)
		if err != nil {
			return Export{}, err
		}
		return Export{
			Filename:    "orders_" + suffix + ".xlsx",
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Data:        data,
		}, nil
	}

	data, err := ordersCSV(rows)
	if err != nil {
		return Export{}, err
	}
	return Export{
		Filename:    "orders_" + suffix + ".csv",
		ContentType: "text/csv; charset=utf-8",
		Data:        data,
	}, nil
}

func decimalCell(valid bool, value string) string {
	if !valid {
		return ""
	}
	return value
}

func ordersCSV(rows [][]string) ([]byte, error) {
	buf := new(bytes.Buffer)
	w := csv.NewWriter(buf)
	_ = w.Write(exportHeader)
	for _, row := range rows {
		_ = w.Write(row)
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func ordersXLSX(rows [][]string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Orders"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	_ = f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	for c, v := range exportHeader {
		cell, _ := excelize.CoordinatesToCellName(c+1, 1)
		_ = f.SetCellValue(sheet, cell, v)
	}
	for r, row := range rows {
		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}

	_ = f.SetColWidth(sheet, "A", "C", 14)
	_ = f.SetColWidth(sheet, "D", "F", 24)
	_ = f.SetColWidth(sheet, "G", "J", 12)

	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#1F2937"}, Pattern: 1},
	})
	if err == nil {
		_ = f.SetCellStyle(sheet, "A1", "J1", style)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
