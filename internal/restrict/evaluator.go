package restrict

import (
	"github.com/vvka-141/exodus/internal/xmldoc"
)

const (
	ruleDenyDatastreams = "deny-dsid-mime"
	ruleDenyAccess      = "deny-access-functions"

	functionNot         = "urn:oasis:names:tc:xacml:1.0:function:not"
	functionAnyMemberOf = "urn:oasis:names:tc:xacml:1.0:function:string-at-least-one-member-of"
)

// Verdict is the combined restriction outcome for one policy document.
type Verdict struct {
	WorkRestricted        bool
	RestrictedDatastreams []string
}

// Rule is one XACML rule's identity, surfaced for diagnostics.
type Rule struct {
	ID     string
	Effect string
}

// Restrictions evaluates one parsed XACML policy document.
type Restrictions struct {
	doc *xmldoc.Document
}

// NewRestrictions wraps a parsed policy document for evaluation.
func NewRestrictions(doc *xmldoc.Document) *Restrictions {
	return &Restrictions{doc: doc}
}

// Load parses the policy file at path and prepares it for evaluation.
func Load(path string) (*Restrictions, error) {
	doc, err := xmldoc.ParseFile(path)
	if err != nil {
		return nil, err
	}
	return NewRestrictions(doc), nil
}

// Rules lists every rule's id and effect, interpreted or not.
func (r *Restrictions) Rules() ([]Rule, error) {
	nodes, err := r.doc.Nodes(`//xacml:Rule`)
	if err != nil {
		return nil, err
	}

	var rules []Rule
	for _, node := range nodes {
		rules = append(rules, Rule{
			ID:     xmldoc.Attr(node, "RuleId"),
			Effect: xmldoc.Attr(node, "Effect"),
		})
	}
	return rules, nil
}

// RestrictedDatastreams collects the datastream IDs denied to everyone by
// deny-dsid-mime rules.
func (r *Restrictions) RestrictedDatastreams() ([]string, error) {
	rules, err := r.doc.Nodes(`//xacml:Rule[@RuleId="` + ruleDenyDatastreams + `"]`)
	if err != nil {
		return nil, err
	}

	var datastreams []string
	for _, rule := range rules {
		resources, err := xmldoc.Wrap(rule).Nodes(`//xacml:Resource`)
		if err != nil {
			return nil, err
		}
		for _, resource := range resources {
			dsid, err := xmldoc.Wrap(resource).First(`//xacml:AttributeValue`)
			if err != nil {
				return nil, err
			}
			if dsid != "" {
				datastreams = append(datastreams, dsid)
			}
		}
	}
	return datastreams, nil
}

// UsersWithAccess collects the user IDs named by a deny-access-functions
// rule's allow-list: a not() condition wrapping a string membership test.
func (r *Restrictions) UsersWithAccess() ([]string, error) {
	rules, err := r.doc.Nodes(`//xacml:Rule[@RuleId="` + ruleDenyAccess + `"]`)
	if err != nil {
		return nil, err
	}

	var users []string
	for _, rule := range rules {
		conditions, err := xmldoc.Wrap(rule).Nodes(`//xacml:Condition[@FunctionId="` + functionNot + `"]`)
		if err != nil {
			return nil, err
		}
		for _, condition := range conditions {
			applies, err := xmldoc.Wrap(condition).Nodes(`//xacml:Apply[@FunctionId="` + functionAnyMemberOf + `"]`)
			if err != nil {
				return nil, err
			}
			for _, apply := range applies {
				values, err := xmldoc.Wrap(apply).Strings(`//xacml:AttributeValue`)
				if err != nil {
					return nil, err
				}
				users = append(users, values...)
			}
		}
	}
	return users, nil
}

// WorkRestricted reports whether the object as a whole is gated to a named
// user allow-list, independent of any per-datastream denial.
func (r *Restrictions) WorkRestricted() (bool, error) {
	users, err := r.UsersWithAccess()
	if err != nil {
		return false, err
	}
	return len(users) > 0, nil
}

// Get returns the combined verdict for the policy.
func (r *Restrictions) Get() (Verdict, error) {
	restricted, err := r.WorkRestricted()
	if err != nil {
		return Verdict{}, err
	}
	datastreams, err := r.RestrictedDatastreams()
	if err != nil {
		return Verdict{}, err
	}
	return Verdict{
		WorkRestricted:        restricted,
		RestrictedDatastreams: datastreams,
	}, nil
}
