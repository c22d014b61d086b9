package classifier

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeywordClassifier_Classify(t *testing.T) {
	c := New(DefaultRules())

	tests := []struct {
		name        string
		description string
		topics      []string
		want        []string
	}{
		{
			name:        "jwt auth toolkit",
			description: "A JWT-based auth toolkit",
			topics:      []string{"security", "cli"},
			want:        []string{SubjectSecurity},
		},
		{
			name:        "unrelated text falls back to default",
			description: "A tiny wordle clone",
			want:        []string{SubjectProjects},
		},
		{
			name:        "kubernetes in any casing",
			description: "Operator for KuberNetes",
			want:        []string{SubjectHighAvailability},
		},
		{
			name:        "substring inside another word",
			description: "behavior tree library",
			want:        []string{SubjectHighAvailability},
		},
		{
			name:        "several subjects sorted",
			description: "JWT auth for Kubernetes clusters",
			want:        []string{SubjectHighAvailability, SubjectSecurity},
		},
		{
			name:   "topics only",
			topics: []string{"DevOps"},
			want:   []string{SubjectProjects},
		},
		{
			name: "empty input",
			want: []string{SubjectProjects},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Classify(tt.description, tt.topics))
		})
	}
}

func TestKeywordClassifier_NeverEmptySortedUnique(t *testing.T) {
	c := New(DefaultRules())

	inputs := []struct {
		description string
		topics      []string
	}{
		{"", nil},
		{"HAProxy config templates for CI/CD", []string{"haproxy", "ci", "templates"}},
		{"Password hashing with bcrypt", []string{"crypto", "security"}},
		{"Etcd-backed leader election", []string{"consensus", "etcd", "sre"}},
		{"Markdown editor", []string{"editor", "markdown"}},
		{"Fullstack starter with OAuth and Kubernetes manifests", []string{"api", "k8s", "oauth"}},
		{"Càrrega d'arxius amb ñandú", []string{"utf8"}},
	}

	for _, in := range inputs {
		got := c.Classify(in.description, in.topics)

		assert.NotEmpty(t, got, in.description)
		assert.True(t, sort.StringsAreSorted(got), in.description)

		seen := map[string]bool{}
		for _, s := range got {
			assert.False(t, seen[s], "duplicate subject %q for %q", s, in.description)
			seen[s] = true
		}
	}
}

func TestKeywordClassifier_DuplicateSubjectRules(t *testing.T) {
	c := New(RuleSet{
		Default: "misc",
		Rules: []Rule{
			{Subject: "db", Keywords: []string{"postgres"}},
			{Subject: "db", Keywords: []string{"redis"}},
		},
	})

	assert.Equal(t, []string{"db"}, c.Classify("postgres and redis", nil))
	assert.Equal(t, []string{"misc"}, c.Classify("nothing here", nil))
}
