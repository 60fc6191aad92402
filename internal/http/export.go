package httpapi

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"kesif-backend/internal/domain"

	"github.com/xuri/excelize/v2"
)

// InfluencerExportHeader 网红导出表头
var InfluencerExportHeader = []string{
	"ID",
	"Name",
	"Slug",
	"Category",
	"Specialties",
	"Social Media",
	"Sort Order",
	"Created At",
}

// GenerateInfluencerExport 生成网红列表 Excel 文件
func GenerateInfluencerExport(items []domain.Influencer) ([]byte, error) {
	rows := make([][]any, 0, len(items))
	for _, in := range items {
		socials := make([]string, 0, len(in.SocialCounts))
		for platform, count := range in.SocialCounts {
			socials = append(socials, fmt.Sprintf("%s: %s", platform, count))
		}
		rows = append(rows, []any{
			in.ID,
			in.Name,
			in.Slug,
			in.Category,
			strings.Join(in.Specialties, ", "),
			strings.Join(socials, ", "),
			in.SortOrder,
			in.CreatedAt.Format("2006-01-02 15:04"),
		})
	}
	return generateExcel("Influencers", InfluencerExportHeader, rows)
}

// PageViewExportHeader 页面访问导出表头
var PageViewExportHeader = []string{
	"ID",
	"Page Path",
	"Page Title",
	"IP Address",
	"Referrer",
	"Duration (s)",
	"Created At",
}

// GeneratePageViewExport 生成页面访问记录 Excel 文件
func GeneratePageViewExport(items []domain.PageView) ([]byte, error) {
	rows := make([][]any, 0, len(items))
	for _, v := range items {
		rows = append(rows, []any{
			v.ID,
			v.PagePath,
			v.PageTitle,
			v.IPAddress,
			v.Referrer,
			v.DurationSeconds,
			v.CreatedAt.Format("2006-01-02 15:04"),
		})
	}
	return generateExcel("Page Views", PageViewExportHeader, rows)
}

// generateExcel 通用的单 sheet 导出
func generateExcel(sheetName string, headers []string, rows [][]any) ([]byte, error) {
	f := excelize.NewFile()
	// Note: WriteTo 需要文件保持打开，这里不 defer Close

	index, err := f.NewSheet(sheetName)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to resolve header cell: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
		if err := f.SetCellStyle(sheetName, cell, cell, headerStyle); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to style header: %w", err)
		}
	}

	for rowIdx, row := range rows {
		for colIdx, value := range row {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to resolve cell: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to write cell: %w", err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to serialize excel: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to close excel file: %w", err)
	}
	return buf.Bytes(), nil
}

// exportFilename 带日期的下载文件名
func exportFilename(prefix string) string {
	return fmt.Sprintf("%s_%s.xlsx", prefix, time.Now().Format("20060102"))
}
