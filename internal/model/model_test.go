package model

import (
    "testing"
    "time"
)

func TestParseRole(t *testing.T) {
    cases := []struct {
        in   string
        want Role
    }{
        {"ADMIN", RoleAdmin},
        {"RECEPCIONISTA", RoleReceptionist},
        {"VETERINARIO", RoleVet},
        {"CLIENTE", RoleClient},
        {"", RoleClient},
        {"admin", RoleClient},
        {"SUPERUSER", RoleClient},
    }
    for _, tc := range cases {
        if got := ParseRole(tc.in); got != tc.want {
            t.Errorf("ParseRole(%q) = %q, want %q", tc.in, got, tc.want)
        }
    }
}

func TestAppointmentStatusActive(t *testing.T) {
    active := []AppointmentStatus{StatusScheduled, StatusConfirmed}
    for _, s := range active {
        if !s.Active() {
            t.Errorf("%s should be active", s)
        }
        if s.Terminal() {
            t.Errorf("%s should not be terminal", s)
        }
    }
    terminal := []AppointmentStatus{StatusCompleted, StatusCancelled, StatusNoShow}
    for _, s := range terminal {
        if s.Active() {
            t.Errorf("%s should not be active", s)
        }
        if !s.Terminal() {
            t.Errorf("%s should be terminal", s)
        }
    }
}

func TestValidAppointmentType(t *testing.T) {
    for _, ty := range []AppointmentType{TypeGeneral, TypeCheckup, TypeVaccination, TypeSurgery, TypeUrgent} {
        if !ValidAppointmentType(ty) {
            t.Errorf("%s should be valid", ty)
        }
    }
    if ValidAppointmentType(AppointmentType("PELUQUERIA")) {
        t.Error("unknown type should be invalid")
    }
}

func TestApproxAge(t *testing.T) {
    now := time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

    t.Run("unknown birth date", func(t *testing.T) {
        p := Pet{}
        if got := p.ApproxAge(now); got != -1 {
            t.Fatalf("ApproxAge = %d, want -1", got)
        }
    })

    t.Run("birthday already passed", func(t *testing.T) {
        dob := time.Date(2020, time.March, 1, 0, 0, 0, 0, time.UTC)
        p := Pet{FechaNacimiento: &dob}
        if got := p.ApproxAge(now); got != 5 {
            t.Fatalf("ApproxAge = %d, want 5", got)
        }
    })

    t.Run("birthday not yet reached", func(t *testing.T) {
        dob := time.Date(2020, time.September, 1, 0, 0, 0, 0, time.UTC)
        p := Pet{FechaNacimiento: &dob}
        if got := p.ApproxAge(now); got != 4 {
            t.Fatalf("ApproxAge = %d, want 4", got)
        }
    })
}
