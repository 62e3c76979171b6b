package llm

import (
	"testing"
)

func TestCleanJSONBlock(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "json code block",
			input:    "```json\n{\"key\": \"value\"}\n```",
			expected: `{"key": "value"}`,
		},
		{
			name:     "generic code block",
			input:    "```\n{\"key\": \"value\"}\n```",
			expected: `{"key": "value"}`,
		},
		{
			name:     "code block with language",
			input:    "```javascript\n{\"key\": \"value\"}\n```",
			expected: `{"key": "value"}`,
		},
		{
			name:     "plain JSON",
			input:    `{"key": "value"}`,
			expected: `{"key": "value"}`,
		},
		{
			name:     "surrounding whitespace",
			input:    "  \n{\"key\": \"value\"}\n\t",
			expected: `{"key": "value"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CleanJSONBlock(tt.input)
			if result != tt.expected {
				t.Errorf("CleanJSONBlock() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		wantErr  bool
	}{
		{
			name:     "bare object",
			input:    `{"company_name": "ACME GmbH"}`,
			expected: `{"company_name": "ACME GmbH"}`,
		},
		{
			name:     "prose before and after",
			input:    "Here is the data: {\"company_name\": \"ACME GmbH\", \"job_title\": \"Data Engineer\"} thanks!",
			expected: `{"company_name": "ACME GmbH", "job_title": "Data Engineer"}`,
		},
		{
			name:     "fenced object with prose",
			input:    "Here is the data: ```json\n{\"company_name\": \"ACME GmbH\"}\n``` thanks!",
			expected: `{"company_name": "ACME GmbH"}`,
		},
		{
			name:     "embedded newlines",
			input:    "Result:\n{\n  \"company_name\": \"Innovate GmbH\",\n  \"job_title\": \"Senior Data Engineer\"\n}\nDone.",
			expected: "{\n  \"company_name\": \"Innovate GmbH\",\n  \"job_title\": \"Senior Data Engineer\"\n}",
		},
		{
			name:     "nested objects",
			input:    `Output: {"outer": {"inner": "value"}} trailing`,
			expected: `{"outer": {"inner": "value"}}`,
		},
		{
			name:     "braces inside string literals",
			input:    `{"note": "uses {curly} braces", "job_title": "Engineer"}`,
			expected: `{"note": "uses {curly} braces", "job_title": "Engineer"}`,
		},
		{
			name:     "escaped quote inside string",
			input:    `{"company_name": "ACME \"The Best\" GmbH"}`,
			expected: `{"company_name": "ACME \"The Best\" GmbH"}`,
		},
		{
			name:    "prose only",
			input:   "I could not find a company name in the provided text.",
			wantErr: true,
		},
		{
			name:    "unterminated object",
			input:   `{"company_name": "ACME GmbH"`,
			wantErr: true,
		},
		{
			name:    "empty input",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ExtractJSONObject(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ExtractJSONObject() = %q, want error", result)
				}
				return
			}
			if err != nil {
				t.Fatalf("ExtractJSONObject() error = %v", err)
			}
			if result != tt.expected {
				t.Errorf("ExtractJSONObject() = %q, want %q", result, tt.expected)
			}
		})
	}
}
