package cache

import (
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"
)

const geocodeKeyPrefix = "geocode:"

// GeocodeKey - ключ кеша для адреса. Адрес нормализуется (регистр, пробелы),
// поэтому "  Beijing  Road" и "beijing road" попадают в одну запись.
func GeocodeKey(address string) string {
	return fmt.Sprintf("%s%016x", geocodeKeyPrefix, xxhash.Sum64String(normalizeAddress(address)))
}

func normalizeAddress(address string) string {
	return strings.ToLower(strings.Join(strings.Fields(address), " "))
}
