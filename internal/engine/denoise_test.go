package engine

import "testing"

func cm(index int, stype SectionType, conf float64, text string) CandidateMatch {
	return CandidateMatch{Index: index, Type: stype, Confidence: conf, Text: text}
}

func TestDenoiseDropsRecurringBoilerplate(t *testing.T) {
	in := []CandidateMatch{
		cm(0, Summary, 0.9, "Professional Summary"),
		cm(5, Skills, 0.85, "Company Confidential"),
		cm(9, Skills, 0.85, "Company Confidential"),
		cm(14, Skills, 0.85, "Company Confidential"),
	}
	out := Denoise(in)
	for _, c := range out {
		if c.Text == "Company Confidential" {
			t.Error("recurring boilerplate survived")
		}
	}
	if len(out) != 1 || out[0].Type != Summary {
		t.Errorf("unexpected survivors: %+v", out)
	}
}

func TestDenoiseShortAndColonFilters(t *testing.T) {
	in := []CandidateMatch{
		cm(0, Skills, 0.9, "OS"),
		cm(1, Skills, 1.2, "OS:"),
		cm(2, Summary, 0.9, "Summary:"),
		cm(3, Summary, 0.99, "Objective:"),
	}
	out := Denoise(in)

	texts := map[string]bool{}
	for _, c := range out {
		texts[c.Text] = true
	}
	if texts["OS"] {
		t.Error("short low-confidence text survived")
	}
	if texts["Summary:"] {
		t.Error("colon label at 0.9 survived")
	}
	if !texts["Objective:"] {
		t.Error("colon label above keep floor was dropped")
	}
}

func TestDenoiseBlacklist(t *testing.T) {
	in := []CandidateMatch{
		cm(0, Tools, 1.0, "Sketch"),
		cm(1, WorkExperience, 1.0, "User Experience Design"),
		cm(2, Skills, 1.0, "Technical Skills"),
	}
	out := Denoise(in)
	if len(out) != 1 || out[0].Text != "Technical Skills" {
		t.Errorf("blacklist not applied: %+v", out)
	}
}

func TestDenoiseBlacklistMatchesWholeText(t *testing.T) {
	in := []CandidateMatch{
		cm(0, Skills, 1.0, "Tech Stack"),
		cm(2, Tools, 1.0, "Tools & Technologies"),
		cm(4, Skills, 1.0, "Stack"),
	}
	out := Denoise(in)

	texts := map[string]bool{}
	for _, c := range out {
		texts[c.Text] = true
	}
	// Banners containing a blacklisted word are genuine synonyms; only the
	// bare word itself is noise.
	if !texts["Tech Stack"] || !texts["Tools & Technologies"] {
		t.Errorf("banner dropped by blacklist: %+v", out)
	}
	if texts["Stack"] {
		t.Error("bare blacklisted word survived")
	}
}

func TestDenoiseOnePerTypeExceptSkillBoxes(t *testing.T) {
	in := []CandidateMatch{
		cm(0, Summary, 0.85, "Professional Summary"),
		cm(3, Summary, 0.95, "Career Summary"),
		cm(6, Skills, 0.9, "Key Skills"),
		cm(9, Skills, 0.9, "Other Skills"),
	}
	out := Denoise(in)

	summaries, skillBoxes := 0, 0
	for _, c := range out {
		switch c.Type {
		case Summary:
			summaries++
			if c.Text != "Career Summary" {
				t.Errorf("kept %q, want higher-confidence duplicate", c.Text)
			}
		case Skills:
			skillBoxes++
		}
	}
	if summaries != 1 {
		t.Errorf("summaries = %d, want 1", summaries)
	}
	if skillBoxes != 2 {
		t.Errorf("skill boxes = %d, want 2", skillBoxes)
	}
}

func TestDenoiseMarkersSeparateFromBanners(t *testing.T) {
	banner := cm(0, Projects, 1.0, "Projects")
	marker := cm(2, Projects, 0.95, "Project #1")
	marker.RecordMarker = true

	out := Denoise([]CandidateMatch{banner, marker})
	if len(out) != 2 {
		t.Fatalf("got %d survivors, want banner and marker kept apart", len(out))
	}
	if out[0].Index != 0 || out[1].Index != 2 {
		t.Error("output not ordered by sequence index")
	}
}
