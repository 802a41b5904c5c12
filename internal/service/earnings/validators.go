package earnings

import "strings"

func isValidID(id string) bool {
	return strings.TrimSpace(id) != ""
}
