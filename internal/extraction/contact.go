package extraction

import (
	"regexp"
	"strings"
)

// ContactInfo holds basic contact details extracted from resume text
type ContactInfo struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

var (
	emailRe = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)

	// US-style, generic international, and parenthesized area code formats
	phoneRes = []*regexp.Regexp{
		regexp.MustCompile(`\+?\d{1,3}[-.\s]?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`),
		regexp.MustCompile(`\(\d{3}\)\s?\d{3}[-.\s]?\d{4}`),
		regexp.MustCompile(`\+?\d{10,15}`),
	}

	nameStopWords = []string{"summary", "experience", "education", "skills", "projects", "objective", "@"}
)

// ExtractContact pulls name, email and phone from resume text. The name
// heuristic takes the first short line near the top that is not a section
// heading and carries no contact syntax.
func ExtractContact(text string) ContactInfo {
	info := ContactInfo{}

	if m := emailRe.FindString(text); m != "" {
		info.Email = m
	}

	for _, re := range phoneRes {
		if m := re.FindString(text); m != "" {
			info.Phone = strings.TrimSpace(m)
			break
		}
	}

	lines := strings.Split(text, "\n")
	limit := min(len(lines), 5)
	for _, line := range lines[:limit] {
		candidate := strings.TrimSpace(line)
		if candidate == "" || len(strings.Fields(candidate)) > 4 {
			continue
		}
		lower := strings.ToLower(candidate)
		skip := false
		for _, word := range nameStopWords {
			if strings.Contains(lower, word) {
				skip = true
				break
			}
		}
		if !skip {
			info.Name = candidate
			break
		}
	}

	return info
}
