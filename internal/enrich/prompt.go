package enrich

import "fmt"

// promptTemplate asks for exactly the bookAward envelope the extractor
// expects, with a worked example so the model mirrors the field names.
const promptTemplate = `You are researching literary book awards. For the award named %q, find:
- the official registration or submission URL
- the award categories
- the organization behind the award
- the most recent winning books (author, title, publishing year, publisher, ISBN, link)
- the latest date of submission for the current cycle
- the strongest likely competition this year (author and title)

Respond with only a JSON object, no commentary, in exactly this shape:

{
  "bookAward": {
    "registrationUrl": "https://example.org/submit",
    "categories": ["Fiction", "Non-Fiction"],
    "organization": "Example Literary Foundation",
    "lastWinningBooks": [
      {
        "author": "Jane Doe",
        "title": "An Example Novel",
        "publishingYear": 2024,
        "publisher": "Example House",
        "isbn": "978-0-00-000000-0",
        "link": "https://example.org/winner"
      }
    ],
    "latestDateOfSubmission": "2025-12-31",
    "possibleStrongestCompetitionThisYear": [
      {"author": "John Roe", "title": "A Rival Book"}
    ]
  }
}

Use "Not Available" for any field you cannot determine.`

// BuildPrompt returns the enrichment prompt for one award.
func BuildPrompt(awardName string) string {
	return fmt.Sprintf(promptTemplate, awardName)
}
