package cue

import "testing"

func TestLexer(t *testing.T) {
	type test struct {
		input  string
		expect []token
	}
	tests := []test{
		{
			input: "steps 1 '* 2",
			expect: []token{
				{typ: typeIdentifier, text: "steps"},
				{typ: typeInt, text: "1"},
				{typ: typeQuote, text: "'"},
				{typ: typeAsterisk, text: "*"},
				{typ: typeInt, text: "2"},
				{typ: typeEOF},
			},
		},
		{
			input: "'1:2 /    / 3,4",
			expect: []token{
				{typ: typeQuote, text: "'"},
				{typ: typeInt, text: "1"},
				{typ: typeColon, text: ":"},
				{typ: typeInt, text: "2"},
				{typ: typeSlash, text: "/"},
				{typ: typeSlash, text: "/"},
				{typ: typeInt, text: "3"},
				{typ: typeComma, text: ","},
				{typ: typeInt, text: "4"},
				{typ: typeEOF},
			},
		},
		{
			input: "1.0",
			expect: []token{
				{typ: typeFloat, text: "1.0"},
				{typ: typeEOF},
			},
		},
		{
			input: "-1.",
			expect: []token{
				{typ: typeFloat, text: "-1."},
				{typ: typeEOF},
			},
		},
		{
			input: "-.1",
			expect: []token{
				{typ: typeFloat, text: "-.1"},
				{typ: typeEOF},
			},
		},
		{
			input: `load 3 "~/kits/kick 01.wav"`,
			expect: []token{
				{typ: typeIdentifier, text: "load"},
				{typ: typeInt, text: "3"},
				{typ: typeString, text: `"~/kits/kick 01.wav"`},
				{typ: typeEOF},
			},
		},
		{
			input: "play;tempo 90",
			expect: []token{
				{typ: typeIdentifier, text: "play"},
				{typ: typeSemicolon, text: ";"},
				{typ: typeIdentifier, text: "tempo"},
				{typ: typeInt, text: "90"},
				{typ: typeEOF},
			},
		},
		{
			input: "preset 2 closed-hh\t",
			expect: []token{
				{typ: typeIdentifier, text: "preset"},
				{typ: typeInt, text: "2"},
				{typ: typeIdentifier, text: "closed-hh"},
				{typ: typeEOF},
			},
		},
	}
	for _, test := range tests {
		t.Log(test.input)
		tokens, err := lex(test.input)
		if err != nil {
			t.Errorf("unexpected lex error: %v", err)
			continue
		}
		if len(tokens) != len(test.expect) {
			t.Fatalf("token mismatch: \nwant: %+v, \ngot:  %+v", test.expect, tokens)
		}
		for i, got := range tokens {
			want := test.expect[i]
			if want.typ != got.typ {
				t.Errorf("wrong type: want %v, got %v", want, got)
			}
			if want.text != got.text {
				t.Errorf("wrong text: want %v, got %v", want, got)
			}
		}
	}
}

func TestLexerErrors(t *testing.T) {
	for _, input := range []string{
		"a -",
		"a .-",
		`load "unterminated`,
		"set 1 volume 0.5x",
		"a#",
	} {
		_, err := lex(input)
		if err == nil {
			t.Errorf("expected error for input: %q", input)
		}
	}
}
