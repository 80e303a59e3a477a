package courier

import (
	"math"
	"strings"
)

func isValidCourierID(id int64) bool {
	return id > 0
}

func isValidName(name string) bool {
	return strings.TrimSpace(name) != ""
}

func isValidPhone(phone string) bool {
	phone = strings.TrimSpace((phone))
	if !strings.HasPrefix(phone, "+") || len(phone) < 2 {
		return false
	}

	for _, char := range phone[1:] {
		if char < '0' || char > '9' {
			return false
		}
	}
	return true
}

func isValidLocation(lat, lng float64) bool {
	if math.IsNaN(lat) || math.IsNaN(lng) {
		return false
	}
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}
