package export

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
)

const GradeBookSheet = "GradeBook"

var gradeBookHeader = []any{"Student", "Lesson", "Mark", "Date"}

// GradeBookRow 成绩册导出的一行
type GradeBookRow struct {
	Student    string
	Lesson     string
	Value      string
	CreateTime time.Time
}

// GradeBook 生成成绩册 xlsx 文件
func GradeBook(rows []GradeBookRow) ([]byte, error) {
	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	if err := f.SetSheetName(f.GetSheetName(0), GradeBookSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	if err := f.SetSheetRow(GradeBookSheet, "A1", &gradeBookHeader); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := []any{r.Student, r.Lesson, r.Value, r.CreateTime.Format(time.DateOnly)}
		if err := f.SetSheetRow(GradeBookSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
