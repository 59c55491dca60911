package repository

import "strings"

// likeEscape is the ESCAPE character used with likePattern. A backslash would
// need different quoting under MySQL.
const likeEscape = "!"

var likeEscaper = strings.NewReplacer(likeEscape, likeEscape+likeEscape, "%", likeEscape+"%", "_", likeEscape+"_")

// likePattern turns term into a lower-cased substring pattern in which % and _
// match themselves. Use it with "LIKE ? ESCAPE '!'".
func likePattern(term string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"
}
