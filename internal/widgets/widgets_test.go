package widgets

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"kakeibo/internal/log"
)

func testLogger() *log.Logger { return log.New(log.DefaultConfig()) }

func TestRefreshBothSucceed(t *testing.T) {
	weatherSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("current_weather") != "true" {
			t.Errorf("missing current_weather param")
		}
		_, _ = w.Write([]byte(`{"current_weather":{"temperature":21.5,"weathercode":0}}`))
	}))
	defer weatherSrv.Close()
	ratesSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"result":"success","rates":{"USD":0.0068,"EUR":0.0061}}`))
	}))
	defer ratesSrv.Close()

	s := NewService("35.68", "139.69", "JPY", 2*time.Second, testLogger())
	s.WeatherClient().WithBaseURL(weatherSrv.URL)
	s.RatesClient().WithBaseURL(ratesSrv.URL)

	snap := s.Refresh(context.Background())
	if !snap.Weather.OK || snap.Weather.TemperatureC != 21.5 || snap.Weather.Condition != "晴れ" {
		t.Fatalf("weather = %+v", snap.Weather)
	}
	if !snap.Rates.OK || snap.Rates.USD != 0.0068 || snap.Rates.Base != "JPY" {
		t.Fatalf("rates = %+v", snap.Rates)
	}
}

func TestRefreshDegradesPerWidget(t *testing.T) {
	ratesSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"result":"success","rates":{"USD":0.0068}}`))
	}))
	defer ratesSrv.Close()

	s := NewService("35.68", "139.69", "JPY", time.Second, testLogger())
	s.WeatherClient().WithBaseURL("http://127.0.0.1:1") // unreachable
	s.RatesClient().WithBaseURL(ratesSrv.URL)

	snap := s.Refresh(context.Background())
	if snap.Weather.OK {
		t.Fatal("weather should have degraded")
	}
	if !snap.Rates.OK {
		t.Fatal("rates should still succeed")
	}
}

func TestRatesErrorResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"result":"error"}`))
	}))
	defer srv.Close()

	c := NewRatesClient("JPY", srv.Client()).WithBaseURL(srv.URL)
	if _, err := c.Latest(context.Background()); err == nil {
		t.Fatal("expected error for non-success result")
	}
}

func TestConditionLabels(t *testing.T) {
	cases := map[int]string{0: "晴れ", 2: "くもり", 45: "霧", 61: "雨", 71: "雪", 95: "雷雨"}
	for code, want := range cases {
		if got := conditionLabel(code); got != want {
			t.Fatalf("code %d = %s, want %s", code, got, want)
		}
	}
}
