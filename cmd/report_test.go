package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mizuno-gh/repoview/internal/domain"
)

func TestPrintReport(t *testing.T) {
	testCases := []struct {
		name     string
		report   *domain.Report
		expected string
	}{
		{
			name: "full report",
			report: &domain.Report{
				Repository: &domain.Repository{
					ID:       1296269,
					NodeID:   "MDEwOlJlcG9zaXRvcnkxMjk2MjY5",
					Name:     "Hello-World",
					FullName: "octocat/Hello-World",
					Language: "Go",
					Private:  false,
				},
				Contributors: 4,
				OpenIssues:   3,
				ClosedIssues: 7,
				Commits:      25,
			},
			expected: "Repository Info:\n" +
				"ID: 1296269\n" +
				"Node ID: MDEwOlJlcG9zaXRvcnkxMjk2MjY5\n" +
				"Name: Hello-World\n" +
				"Full name: octocat/Hello-World\n" +
				"Language: Go\n" +
				"Private: false\n" +
				"No. of contributors: 4\n" +
				"Open issues: 3\n" +
				"Closed issues: 7\n" +
				"Total commits: 25\n",
		},
		{
			name: "missing repository metadata skips the info block",
			report: &domain.Report{
				Commits: 2,
			},
			expected: "Total commits: 2\n",
		},
		{
			name:     "fully degraded report prints nothing",
			report:   &domain.Report{},
			expected: "",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			printReport(&buf, tc.report)
			assert.Equal(t, tc.expected, buf.String())
		})
	}
}
