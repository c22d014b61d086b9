package classifier

import (
	"fmt"
	"os"
	"strings"

	"starred-catalog/internal/common"

	"gopkg.in/yaml.v3"
)

// Rule maps one subject to the keywords that select it.
type Rule struct {
	Subject  string   `yaml:"subject"`
	Keywords []string `yaml:"keywords"`
}

// RuleSet is an ordered rule table plus the fallback subject.
type RuleSet struct {
	Default string `yaml:"default"`
	Rules   []Rule `yaml:"rules"`
}

// Built-in subject identifiers.
const (
	SubjectSecurity         = "seguretat"
	SubjectHighAvailability = "alta-disponibilitat"
	SubjectProjects         = "projectes"
)

// DefaultRules returns the built-in rule table. Keywords are plain
// substrings, so short ones such as "ha" or "ci" also match inside words.
func DefaultRules() RuleSet {
	return RuleSet{
		Default: SubjectProjects,
		Rules: []Rule{
			{
				Subject: SubjectSecurity,
				Keywords: []string{
					"security", "seguridad", "crypt", "tls", "jwt", "auth", "oauth", "owasp", "firewall",
					"ids", "ips", "forensics", "hash", "cert", "mfa", "2fa", "xss", "sqli", "hardening",
				},
			},
			{
				Subject: SubjectHighAvailability,
				Keywords: []string{
					"ha", "high availability", "cluster", "replica", "replication", "kubernetes", "k8s",
					"docker swarm", "keepalived", "haproxy", "nginx", "load balancer", "failover",
					"consul", "etcd", "patroni", "sre", "autoscaling",
				},
			},
			{
				Subject: SubjectProjects,
				Keywords: []string{
					"project", "scaffold", "template", "ci", "cd", "devops", "monorepo", "starter",
					"roadmap", "kanban", "scrum", "fullstack", "backend", "frontend", "api",
				},
			},
		},
	}
}

// LoadRules reads a YAML rule table from path.
func LoadRules(path string) (RuleSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return RuleSet{}, common.WrapError(common.ErrCodeConfig, "read rules file", err)
	}
	return ParseRules(data)
}

// ParseRules decodes and validates a YAML rule table.
func ParseRules(data []byte) (RuleSet, error) {
	var rs RuleSet
	if err := yaml.Unmarshal(data, &rs); err != nil {
		return RuleSet{}, common.WrapError(common.ErrCodeConfig, "parse rules file", err)
	}
	if err := rs.Validate(); err != nil {
		return RuleSet{}, err
	}
	return rs.normalized(), nil
}

// Validate checks that the table can classify anything.
func (rs RuleSet) Validate() error {
	if strings.TrimSpace(rs.Default) == "" {
		return common.NewError(common.ErrCodeConfig, "rules: default subject is empty")
	}
	for i, r := range rs.Rules {
		if strings.TrimSpace(r.Subject) == "" {
			return common.NewError(common.ErrCodeConfig, fmt.Sprintf("rules[%d]: subject is empty", i))
		}
		if len(r.Keywords) == 0 {
			return common.NewError(common.ErrCodeConfig, fmt.Sprintf("rules[%d] %q: no keywords", i, r.Subject))
		}
		for _, kw := range r.Keywords {
			if kw == "" {
				return common.NewError(common.ErrCodeConfig, fmt.Sprintf("rules[%d] %q: empty keyword", i, r.Subject))
			}
		}
	}
	return nil
}

func (rs RuleSet) normalized() RuleSet {
	out := RuleSet{
		Default: strings.TrimSpace(rs.Default),
		Rules:   make([]Rule, 0, len(rs.Rules)),
	}
	for _, r := range rs.Rules {
		kws := make([]string, 0, len(r.Keywords))
		for _, kw := range r.Keywords {
			kws = append(kws, strings.ToLower(kw))
		}
		out.Rules = append(out.Rules, Rule{Subject: strings.TrimSpace(r.Subject), Keywords: kws})
	}
	return out
}
