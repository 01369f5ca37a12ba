package engine

import (
	"fmt"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v6"

	"db-clone/internal/schema"
)

func truncate(s string, limit int) string {
	if limit <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) > limit {
		return string(runes[:limit])
	}
	return s
}

// GenerateValue produces a random value matching the column's data type, with
// name-based hints for common fields (email, phone, address and the like).
func GenerateValue(col *schema.Column) interface{} {
	dataType := strings.ToLower(col.DataType)

	switch {
	case strings.Contains(dataType, "char") || strings.Contains(dataType, "text"):
		return truncate(stringValue(col), col.Length)
	case dataType == "year":
		return 2000 + gofakeit.Number(0, 25)
	case strings.Contains(dataType, "tinyint"):
		return gofakeit.Number(0, 1)
	case strings.Contains(dataType, "smallint"):
		return gofakeit.Number(1, 32767)
	case strings.Contains(dataType, "bigint"):
		return gofakeit.Number(1, 1_000_000_000)
	case strings.Contains(dataType, "int"):
		return gofakeit.Number(1, 1_000_000)
	case strings.Contains(dataType, "decimal") || strings.Contains(dataType, "numeric"):
		return fmt.Sprintf("%.2f", gofakeit.Price(1, 10000))
	case strings.Contains(dataType, "float") || strings.Contains(dataType, "double") || strings.Contains(dataType, "real"):
		return gofakeit.Float64Range(0, 10000)
	case strings.Contains(dataType, "bool"):
		return gofakeit.Bool()
	case dataType == "date":
		return randomDate().Format("2006-01-02")
	case strings.Contains(dataType, "timestamp") || strings.Contains(dataType, "datetime"):
		return randomDate().Format("2006-01-02 15:04:05")
	case strings.Contains(dataType, "time"):
		return randomDate().Format("15:04:05")
	case strings.Contains(dataType, "blob") || strings.Contains(dataType, "binary") || strings.Contains(dataType, "bytea"):
		return []byte(gofakeit.Word())
	default:
		return gofakeit.Word()
	}
}

func randomDate() time.Time {
	start := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 12, 31, 23, 59, 59, 0, time.UTC)
	return gofakeit.DateRange(start, end)
}

func stringValue(col *schema.Column) string {
	name := strings.ToLower(col.Name)

	switch {
	case strings.Contains(name, "email"):
		return gofakeit.Email()
	case strings.Contains(name, "phone") || strings.Contains(name, "tel"):
		return gofakeit.Phone()
	case strings.Contains(name, "first_name") || strings.Contains(name, "firstname"):
		return gofakeit.FirstName()
	case strings.Contains(name, "last_name") || strings.Contains(name, "lastname"):
		return gofakeit.LastName()
	case strings.Contains(name, "name") || strings.Contains(name, "title"):
		return gofakeit.Name()
	case strings.Contains(name, "address") || strings.Contains(name, "street"):
		return gofakeit.Street()
	case strings.Contains(name, "city"):
		return gofakeit.City()
	case strings.Contains(name, "country"):
		return gofakeit.Country()
	case strings.Contains(name, "zip") || strings.Contains(name, "postal"):
		return gofakeit.Zip()
	case strings.Contains(name, "url") || strings.Contains(name, "link"):
		return gofakeit.URL()
	case strings.Contains(name, "uuid") || strings.Contains(name, "guid"):
		return gofakeit.UUID()
	case strings.Contains(name, "password"):
		return gofakeit.Password(true, true, true, false, false, 12)
	case strings.Contains(name, "description") || strings.Contains(name, "comment") || strings.Contains(name, "note"):
		return gofakeit.Sentence(8)
	default:
		return gofakeit.Word()
	}
}
