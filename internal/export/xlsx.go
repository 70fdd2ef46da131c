// Package export renders the delivery snapshot as an XLSX workbook.
package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"field-delivery-sync/internal/domain"
)

const (
	summarySheet    = "Сводка"
	deliveriesSheet = "Доставки"
	timeLayout      = "02.01.2006 15:04"
)

var headers = []string{
	"ID",
	"Модель ТС",
	"Номер ТС",
	"Упаковка",
	"Статус",
	"Откуда",
	"Куда",
	"Расстояние, км",
	"Отправление",
	"Прибытие",
	"В пути",
	"Услуги",
	"Сборщик",
	"Тех. состояние",
	"Комментарий",
	"Обработана",
}

// Generator builds workbooks.
type Generator struct {
	loc *time.Location
}

// NewGenerator returns a Generator that prints times in loc. A nil loc
// means UTC.
func NewGenerator(loc *time.Location) *Generator {
	if loc == nil {
		loc = time.UTC
	}
	return &Generator{loc: loc}
}

// Generate returns the workbook bytes.
func (g *Generator) Generate(deliveries []domain.Delivery, generatedAt time.Time) ([]byte, error) {
	file := excelize.NewFile()
	defer file.Close()

	if err := file.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, err
	}
	g.writeSummary(file, deliveries, generatedAt)

	if _, err := file.NewSheet(deliveriesSheet); err != nil {
		return nil, err
	}
	if err := g.writeDeliveries(file, deliveries); err != nil {
		return nil, err
	}

	file.SetActiveSheet(0)
	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

func (g *Generator) writeSummary(file *excelize.File, deliveries []domain.Delivery, generatedAt time.Time) {
	var processed, minutes int
	var distance float64
	for _, d := range deliveries {
		if d.IsProcessed {
			processed++
		}
		minutes += d.TransitMinutes()
		distance += d.Distance
	}

	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(summarySheet, cell, value)
	}
	set("A1", "Сформировано")
	set("B1", g.formatTime(generatedAt))
	set("A2", "Доставок")
	set("B2", len(deliveries))
	set("A3", "Обработано")
	set("B3", processed)
	set("A4", "Общее расстояние, км")
	set("B4", distance)
	set("A5", "Общее время в пути")
	set("B5", domain.FormatTravelTime(minutes))

	_ = file.SetColWidth(summarySheet, "A", "A", 28)
	_ = file.SetColWidth(summarySheet, "B", "B", 20)
}

func (g *Generator) writeDeliveries(file *excelize.File, deliveries []domain.Delivery) error {
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		_ = file.SetCellValue(deliveriesSheet, cell, h)
	}

	for i, d := range deliveries {
		row := []interface{}{
			d.ID,
			d.VehicleModel,
			d.VehicleNumber,
			d.PackageType,
			d.Status,
			d.FromLocation,
			d.ToLocation,
			d.Distance,
			g.formatTime(d.DepartureTime),
			g.formatTime(d.DeliveryTime),
			domain.FormatTravelTime(d.TransitMinutes()),
			serviceNames(d.Services),
			d.CollectorNameDisplay,
			d.TechnicalState,
			d.CollectorComment,
			yesNo(d.IsProcessed),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := file.SetSheetRow(deliveriesSheet, cell, &row); err != nil {
			return err
		}
	}

	_ = file.SetColWidth(deliveriesSheet, "A", "A", 8)
	_ = file.SetColWidth(deliveriesSheet, "B", "E", 16)
	_ = file.SetColWidth(deliveriesSheet, "F", "G", 28)
	_ = file.SetColWidth(deliveriesSheet, "H", "K", 16)
	_ = file.SetColWidth(deliveriesSheet, "L", "O", 24)
	return nil
}

func (g *Generator) formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.In(g.loc).Format(timeLayout)
}

func serviceNames(services []domain.Service) string {
	names := make([]string, 0, len(services))
	for _, s := range services {
		names = append(names, s.Name)
	}
	return strings.Join(names, ", ")
}

func yesNo(b bool) string {
	if b {
		return "Да"
	}
	return "Нет"
}
