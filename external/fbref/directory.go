package fbref

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	crerr "github.com/cockroachdb/errors"
)

// TeamDescriptor is one directory entry on a league page: the team name,
// its relative squad URL and the opaque id embedded in that URL.
type TeamDescriptor struct {
	Name        string
	RelativeURL string
	ExternalID  string
}

// ParseTeamDirectory reads the league standings table and returns one
// descriptor per linked squad, in page order and with duplicates dropped.
func ParseTeamDirectory(html string) ([]TeamDescriptor, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(revealComments(html)))
	if err != nil {
		return nil, crerr.Wrap(err, "parse league page")
	}

	table := doc.Find("table.stats_table").First()
	if table.Length() == 0 {
		return nil, crerr.New("no standings table on league page")
	}

	seen := map[string]bool{}
	var teams []TeamDescriptor
	table.Find(`th[data-stat="squad"] a, td[data-stat="squad"] a, th[data-stat="team"] a, td[data-stat="team"] a`).
		Each(func(_ int, link *goquery.Selection) {
			href, ok := link.Attr("href")
			if !ok || href == "" {
				return
			}
			name := strings.TrimSpace(link.Text())
			if name == "" || seen[href] {
				return
			}
			seen[href] = true
			teams = append(teams, TeamDescriptor{
				Name:        name,
				RelativeURL: href,
				ExternalID:  squadIDFromURL(href),
			})
		})

	if len(teams) == 0 {
		return nil, crerr.New("standings table has no squad links")
	}
	return teams, nil
}

// squadIDFromURL pulls the opaque squad id out of a path such as
// /en/squads/18bb7c10/Arsenal-Stats.
func squadIDFromURL(href string) string {
	parts := strings.Split(strings.Trim(href, "/"), "/")
	for i, p := range parts {
		if p == "squads" && i+1 < len(parts) {
			return parts[i+1]
		}
	}
	return ""
}
