package screening

import "testing"

func TestCleanResponse(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"escaped emphasis", `\*bold\*`, "bold"},
		{"escaped double emphasis", `\**bold\**`, "bold"},
		{"literal asterisks", "**Strengths:** solid SQL", "Strengths: solid SQL"},
		{"mixed", `1. \*Key Insights\*: strong **Python** background`, "1. Key Insights: strong Python background"},
		{"surrounding whitespace", "  verdict  \n", "verdict"},
		{"plain text untouched", "PROCEED TO INTERVIEW", "PROCEED TO INTERVIEW"},
		{"empty", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := cleanResponse(tc.in); got != tc.want {
				t.Fatalf("cleanResponse(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestCleanResponsePreservesStructure(t *testing.T) {
	in := "1. Key Insights\n\n2. Job Fit Analysis\n\n3. FINAL RECOMMENDATION: PROCEED TO INTERVIEW"
	if got := cleanResponse(in); got != in {
		t.Fatalf("paragraph structure changed:\n%q\n%q", in, got)
	}
}
