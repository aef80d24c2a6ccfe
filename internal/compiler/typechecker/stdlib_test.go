package typechecker

import "testing"

func TestLookupStdlibFunction(t *testing.T) {
	tests := []struct {
		qualified  string
		shouldFind bool
	}{
		{"Text.trim", true},
		{"Http.get", true},
		{"Text.nonexistent", false},
		{"trim", false},
		{"Unknown.thing", false},
	}

	for _, tt := range tests {
		t.Run(tt.qualified, func(t *testing.T) {
			fn := lookupStdlib(tt.qualified)
			if (fn != nil) != tt.shouldFind {
				t.Errorf("lookupStdlib(%q): expected found=%v, got %v", tt.qualified, tt.shouldFind, fn != nil)
			}
		})
	}
}

func TestFunctionFullName(t *testing.T) {
	fn := &Function{Namespace: "Http", Name: "get"}
	if fn.FullName() != "Http.get" {
		t.Errorf("expected Http.get, got %s", fn.FullName())
	}
}

func TestSinkFunctionsNamesLogWrite(t *testing.T) {
	if !sinkFunctions["Log.write"] {
		t.Error("Log.write must be registered as a PII sink")
	}
}
