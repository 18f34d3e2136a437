package report

import (
	"bytes"
	"encoding/json"
	"testing"
)

type decodedSarif struct {
	Version string `json:"version"`
	Runs    []struct {
		AutomationDetails struct {
			GUID string `json:"guid"`
		} `json:"automationDetails"`
		Tool struct {
			Driver struct {
				Name            string `json:"name"`
				SemanticVersion string `json:"semanticVersion"`
				Rules           []struct {
					ID string `json:"id"`
				} `json:"rules"`
			} `json:"driver"`
		} `json:"tool"`
		Results []struct {
			RuleID    string `json:"ruleId"`
			Level     string `json:"level"`
			Message   struct{ Text string `json:"text"` } `json:"message"`
			Locations []struct {
				PhysicalLocation struct {
					ArtifactLocation struct {
						URI string `json:"uri"`
					} `json:"artifactLocation"`
					Region struct {
						StartLine   int `json:"startLine"`
						StartColumn int `json:"startColumn"`
					} `json:"region"`
				} `json:"physicalLocation"`
			} `json:"locations"`
		} `json:"results"`
	} `json:"runs"`
}

func writeSarif(t *testing.T, in Inputs) ([]byte, decodedSarif) {
	t.Helper()
	var buf bytes.Buffer
	if err := WriteDiffSarif(&buf, in, fixtureDiffs(), "1.2.3"); err != nil {
		t.Fatalf("WriteDiffSarif: %v", err)
	}
	var doc decodedSarif
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("invalid SARIF produced: %v", err)
	}
	return buf.Bytes(), doc
}

func TestWriteDiffSarifResults(t *testing.T) {
	_, doc := writeSarif(t, Inputs{A: "old.yaml", B: "new.yaml"})

	if doc.Version != "2.1.0" {
		t.Errorf("version = %q", doc.Version)
	}
	if len(doc.Runs) != 1 {
		t.Fatalf("expected a single run, got %d", len(doc.Runs))
	}
	run := doc.Runs[0]
	if run.Tool.Driver.Name != "remarklens" || run.Tool.Driver.SemanticVersion != "1.2.3" {
		t.Errorf("tool = %q %q", run.Tool.Driver.Name, run.Tool.Driver.SemanticVersion)
	}

	// Fixture: 2 A-only + 1 B-only remarks plus one changed pair.
	if len(run.Results) != 4 {
		t.Fatalf("expected 4 results, got %d", len(run.Results))
	}
	levels := map[string]int{}
	for _, res := range run.Results {
		levels[res.Level]++
	}
	if levels["note"] != 3 || levels["warning"] != 1 {
		t.Errorf("levels = %v", levels)
	}

	ruleIDs := map[string]bool{}
	for _, rule := range run.Tool.Driver.Rules {
		ruleIDs[rule.ID] = true
	}
	for _, want := range []string{"inline:Inlined", "inline:NoDefinition", "unroll:Unrolled"} {
		if !ruleIDs[want] {
			t.Errorf("missing rule %q in %v", want, ruleIDs)
		}
	}

	loc := run.Results[0].Locations[0].PhysicalLocation
	if loc.ArtifactLocation.URI != "a.c" || loc.Region.StartLine != 10 || loc.Region.StartColumn != 4 {
		t.Errorf("unexpected physical location %+v", loc)
	}
}

func TestWriteDiffSarifDeterministicGUID(t *testing.T) {
	first, doc1 := writeSarif(t, Inputs{A: "old.yaml", B: "new.yaml"})
	second, doc2 := writeSarif(t, Inputs{A: "old.yaml", B: "new.yaml"})

	if !bytes.Equal(first, second) {
		t.Error("identical inputs must produce byte-identical reports")
	}
	if doc1.Runs[0].AutomationDetails.GUID == "" {
		t.Fatal("run GUID missing")
	}
	if doc1.Runs[0].AutomationDetails.GUID != doc2.Runs[0].AutomationDetails.GUID {
		t.Error("run GUID must be stable")
	}

	_, other := writeSarif(t, Inputs{A: "old.yaml", B: "third.yaml"})
	if other.Runs[0].AutomationDetails.GUID == doc1.Runs[0].AutomationDetails.GUID {
		t.Error("different inputs must derive different GUIDs")
	}
}
