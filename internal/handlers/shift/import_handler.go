package shift

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/evn/shiftpay_backendl/internal/middleware"
	"github.com/evn/shiftpay_backendl/internal/models"
	"github.com/evn/shiftpay_backendl/internal/pkg/response"
)

// Формат импорта: заголовок + строки
// date | start | end | lunch_start | lunch_end | is_holiday | job
// Дата YYYY-MM-DD, времена HH:MM. Конец раньше начала — ночная смена,
// переносится на следующий день.

type importRequest struct {
	GoogleSheetURL string `json:"google_sheet_url,omitempty"`
}

// ImportShiftsHandler — массовый импорт отработанных смен из Excel-файла
// или таблицы Google Sheets.
func (h *ShiftHandler) ImportShiftsHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middleware.GetUserIDFromContext(r.Context())
		if !ok {
			response.RespondWithError(w, http.StatusUnauthorized, "User not authenticated")
			return
		}

		var rows [][]string
		var err error

		contentType := r.Header.Get("Content-Type")
		if strings.Contains(contentType, "application/json") {
			var req importRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				response.RespondWithError(w, http.StatusBadRequest, "Неверный JSON")
				return
			}
			if req.GoogleSheetURL == "" {
				response.RespondWithError(w, http.StatusBadRequest, "google_sheet_url обязателен")
				return
			}
			rows, err = readFromGoogleSheet(req.GoogleSheetURL)
			if err != nil {
				response.RespondWithError(w, http.StatusInternalServerError, "Ошибка чтения Google Sheets: "+err.Error())
				return
			}
		} else {
			file, _, err := r.FormFile("file")
			if err != nil {
				response.RespondWithError(w, http.StatusBadRequest, "Файл не найден")
				return
			}
			defer file.Close()

			xlsx, err := excelize.OpenReader(file)
			if err != nil {
				response.RespondWithError(w, http.StatusBadRequest, "Неверный формат Excel")
				return
			}
			sheetList := xlsx.GetSheetList()
			if len(sheetList) == 0 {
				response.RespondWithError(w, http.StatusBadRequest, "Пустой Excel")
				return
			}
			rows, err = xlsx.GetRows(sheetList[0])
			if err != nil {
				response.RespondWithError(w, http.StatusInternalServerError, "Ошибка чтения листа")
				return
			}
		}

		if len(rows) < 2 {
			response.RespondWithError(w, http.StatusBadRequest, "Файл должен содержать заголовок и хотя бы одну строку")
			return
		}

		imported, err := saveImportedShifts(r.Context(), db, rows[1:], userID)
		if err != nil {
			response.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}

		response.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
			"status":   "ok",
			"imported": imported,
		})
	}
}

func saveImportedShifts(ctx context.Context, db *sql.DB, rows [][]string, userID int) (int, error) {
	type parsed struct {
		shift models.Shift
	}
	var shifts []parsed

	for i, row := range rows {
		if len(row) < 3 {
			continue
		}
		cell := func(idx int) string {
			if idx < len(row) {
				return strings.TrimSpace(row[idx])
			}
			return ""
		}

		date, err := time.Parse("2006-01-02", cell(0))
		if err != nil {
			return 0, fmt.Errorf("строка %d: неверный формат даты (ожидается ГГГГ-ММ-ДД): %s", i+2, cell(0))
		}

		start, err := combineDateTime(date, cell(1))
		if err != nil {
			return 0, fmt.Errorf("строка %d: неверное время начала: %s", i+2, cell(1))
		}
		end, err := combineDateTime(date, cell(2))
		if err != nil {
			return 0, fmt.Errorf("строка %d: неверное время конца: %s", i+2, cell(2))
		}
		if end.Before(start) {
			end = end.Add(24 * time.Hour) // ночная смена
		}

		s := models.Shift{
			UserID:      userID,
			Date:        date,
			ActualStart: &start,
			ActualEnd:   &end,
			Status:      models.ShiftStatusAccepted,
		}

		lunchStartStr, lunchEndStr := cell(3), cell(4)
		if (lunchStartStr == "") != (lunchEndStr == "") {
			return 0, fmt.Errorf("строка %d: обед задаётся обоими временами или никаким", i+2)
		}
		if lunchStartStr != "" {
			lunchStart, err := combineDateTime(date, lunchStartStr)
			if err != nil {
				return 0, fmt.Errorf("строка %d: неверное время начала обеда", i+2)
			}
			lunchEnd, err := combineDateTime(date, lunchEndStr)
			if err != nil {
				return 0, fmt.Errorf("строка %d: неверное время конца обеда", i+2)
			}
			if lunchEnd.Before(lunchStart) {
				lunchEnd = lunchEnd.Add(24 * time.Hour)
			}
			s.LunchStart = &lunchStart
			s.LunchEnd = &lunchEnd
		}

		switch strings.ToLower(cell(5)) {
		case "true", "1", "yes", "да":
			s.IsHoliday = true
		}
		s.Job = cell(6)

		shifts = append(shifts, parsed{shift: s})
	}

	if len(shifts) == 0 {
		return 0, fmt.Errorf("нет данных для импорта")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	for _, p := range shifts {
		s := p.shift
		_, err := tx.ExecContext(ctx, `
			INSERT INTO shifts (user_id, date, actual_start, actual_end,
				lunch_start, lunch_end, is_holiday, job, status)
			VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''), $9)
		`, s.UserID, s.Date, s.ActualStart, s.ActualEnd,
			s.LunchStart, s.LunchEnd, s.IsHoliday, s.Job, s.Status)
		if err != nil {
			return 0, fmt.Errorf("ошибка вставки: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return len(shifts), nil
}

func combineDateTime(date time.Time, hhmm string) (time.Time, error) {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(),
		t.Hour(), t.Minute(), 0, 0, time.UTC), nil
}

func readFromGoogleSheet(url string) ([][]string, error) {
	re := regexp.MustCompile(`\/d\/([a-zA-Z0-9-_]+)`)
	matches := re.FindStringSubmatch(url)
	if len(matches) < 2 {
		return nil, fmt.Errorf("неверный URL Google Sheets")
	}
	spreadsheetID := matches[1]

	ctx := context.Background()
	srv, err := sheets.NewService(ctx, option.WithCredentialsFile("credentials.json"))
	if err != nil {
		return nil, fmt.Errorf("ошибка инициализации Google API: %w", err)
	}

	resp, err := srv.Spreadsheets.Values.Get(spreadsheetID, "A1:G1000").Do()
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения таблицы: %w", err)
	}

	if len(resp.Values) == 0 {
		return nil, fmt.Errorf("таблица пуста")
	}

	var rows [][]string
	for _, row := range resp.Values {
		var strRow []string
		for _, c := range row {
			strRow = append(strRow, fmt.Sprintf("%v", c))
		}
		rows = append(rows, strRow)
	}
	return rows, nil
}
