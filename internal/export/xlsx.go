package export

import (
	"bytes"
	"fmt"
	"sort"
	"time"

	"github.com/xuri/excelize/v2"

	"hrcell_backend/internal/models"
)

// ApplicationsXLSX собирает книгу Excel с откликами одной компании.
// Фиксированные колонки + по колонке на каждый встретившийся ключ ответа
// кастомной формы.
func ApplicationsXLSX(apps []models.Application, jobTitles map[string]string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Applications"
	f.SetSheetName("Sheet1", sheet)

	// Собираем объединенный набор ключей ответов
	answerKeys := map[string]struct{}{}
	for i := range apps {
		for k := range apps[i].Answers {
			answerKeys[k] = struct{}{}
		}
	}
	sortedKeys := make([]string, 0, len(answerKeys))
	for k := range answerKeys {
		sortedKeys = append(sortedKeys, k)
	}
	sort.Strings(sortedKeys)

	headers := append([]string{
		"Submitted", "Job", "Name", "Email", "Phone", "Status", "Resume URL",
	}, sortedKeys...)

	for col, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}

	for row, app := range apps {
		values := []interface{}{
			app.CreatedAt.UTC().Format(time.RFC3339),
			jobTitles[app.JobID],
			app.CandidateName,
			app.CandidateEmail,
			app.CandidatePhone,
			string(app.Status),
			app.ResumeURL,
		}
		for _, k := range sortedKeys {
			if v, ok := app.Answers[k]; ok {
				values = append(values, fmt.Sprintf("%v", v))
			} else {
				values = append(values, "")
			}
		}

		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
