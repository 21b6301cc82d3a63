package service

import (
	"context"
	"fmt"
	"testing"
)

func TestParseRoute(t *testing.T) {
	tests := []struct {
		input    string
		expected Route
		ok       bool
	}{
		{"FAQ", RouteFAQ, true},
		{"faq", RouteFAQ, true},
		{" GREETING ", RouteGreeting, true},
		{"education.", RouteEducation, true},
		{`"GENERAL"`, RouteGeneral, true},
		{"META", RouteMeta, true},
		{"IRRELEVANT", RouteIrrelevant, true},
		{"FAQS", "", false},
		{"the route is FAQ", "", false},
		{"", "", false},
		{"UNKNOWN", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseRoute(tt.input)
			if ok != tt.ok {
				t.Fatalf("ParseRoute(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			}
			if ok && got != tt.expected {
				t.Errorf("ParseRoute(%q) = %s, want %s", tt.input, got, tt.expected)
			}
		})
	}
}

func TestStrictRouterAcceptsPrimaryLabel(t *testing.T) {
	llm := &fakeLLM{handler: func(req *CompletionRequest) (string, error) {
		return "faq.", nil
	}}
	r := NewStrictRouter(llm, &RouterConfig{PrimaryModel: "primary", SecondaryModel: "secondary"})

	if got := r.Route(context.Background(), "braces wire poking cheek"); got != RouteFAQ {
		t.Errorf("Route = %s, want %s", got, RouteFAQ)
	}
	if llm.callCount() != 1 {
		t.Errorf("expected 1 completion call, got %d", llm.callCount())
	}
}

func TestStrictRouterFallsBackOnGarbage(t *testing.T) {
	llm := &fakeLLM{handler: func(req *CompletionRequest) (string, error) {
		if req.Model == "primary" {
			return "I think this should go to the FAQ branch", nil
		}
		return "GENERAL", nil
	}}
	r := NewStrictRouter(llm, &RouterConfig{PrimaryModel: "primary", SecondaryModel: "secondary"})

	if got := r.Route(context.Background(), "whitening cost"); got != RouteGeneral {
		t.Errorf("Route = %s, want %s", got, RouteGeneral)
	}
	if llm.callCount() != 2 {
		t.Errorf("expected 2 completion calls, got %d", llm.callCount())
	}
}

func TestStrictRouterFallsBackOnError(t *testing.T) {
	llm := &fakeLLM{handler: func(req *CompletionRequest) (string, error) {
		if req.Model == "primary" {
			return "", fmt.Errorf("rate limited")
		}
		return "GREETING", nil
	}}
	r := NewStrictRouter(llm, &RouterConfig{PrimaryModel: "primary", SecondaryModel: "secondary"})

	if got := r.Route(context.Background(), "hello"); got != RouteGreeting {
		t.Errorf("Route = %s, want %s", got, RouteGreeting)
	}
}

func TestStrictRouterDefaultsWhenExhausted(t *testing.T) {
	llm := &fakeLLM{handler: func(req *CompletionRequest) (string, error) {
		return "", fmt.Errorf("backend down")
	}}
	r := NewStrictRouter(llm, &RouterConfig{PrimaryModel: "primary", SecondaryModel: "secondary"})

	if got := r.Route(context.Background(), "anything"); got != RouteEducation {
		t.Errorf("Route = %s, want %s", got, RouteEducation)
	}
	if llm.callCount() != 2 {
		t.Errorf("expected both backends tried, got %d calls", llm.callCount())
	}
}

func TestStrictRouterSkipsUnconfiguredPrimary(t *testing.T) {
	llm := &fakeLLM{handler: func(req *CompletionRequest) (string, error) {
		if req.Model != "secondary" {
			t.Errorf("unexpected model %q", req.Model)
		}
		return "META", nil
	}}
	r := NewStrictRouter(llm, &RouterConfig{SecondaryModel: "secondary"})

	if got := r.Route(context.Background(), "who are you"); got != RouteMeta {
		t.Errorf("Route = %s, want %s", got, RouteMeta)
	}
	if llm.callCount() != 1 {
		t.Errorf("expected 1 completion call, got %d", llm.callCount())
	}
}
