package centers

import "testing"

func TestFilterByState(t *testing.T) {
	d := NewDirectory()

	karnataka := d.Filter("Karnataka", "")
	if len(karnataka) == 0 {
		t.Fatal("no centers found for Karnataka")
	}
	for _, c := range karnataka {
		if c.State != "Karnataka" {
			t.Errorf("center %s has state %s, want Karnataka", c.ID, c.State)
		}
	}
}

func TestFilterByType(t *testing.T) {
	d := NewDirectory()

	ewaste := d.Filter("", "e-waste")
	if len(ewaste) == 0 {
		t.Fatal("no e-waste centers found")
	}
	for _, c := range ewaste {
		if c.Type != "e-waste" {
			t.Errorf("center %s has type %s, want e-waste", c.ID, c.Type)
		}
	}
}

func TestFilterCombined(t *testing.T) {
	d := NewDirectory()

	result := d.Filter("Maharashtra", "organic")
	for _, c := range result {
		if c.State != "Maharashtra" || c.Type != "organic" {
			t.Errorf("center %s does not match combined filter: %s/%s", c.ID, c.State, c.Type)
		}
	}

	if got := d.Filter("Goa", ""); got != nil {
		t.Errorf("expected no centers for Goa, got %d", len(got))
	}
}

func TestNearestOrdersByDistance(t *testing.T) {
	d := NewDirectory()

	// From central Bangalore the Karnataka centers must come first.
	result := d.Nearest("", "", 12.9716, 77.5946)
	if len(result) < 3 {
		t.Fatalf("expected full directory, got %d centers", len(result))
	}
	if result[0].State != "Karnataka" {
		t.Errorf("nearest center from Bangalore is in %s, want Karnataka", result[0].State)
	}
	for i := 1; i < len(result); i++ {
		if result[i].DistanceKm < result[i-1].DistanceKm {
			t.Errorf("centers not sorted by distance at index %d: %f < %f",
				i, result[i].DistanceKm, result[i-1].DistanceKm)
		}
	}
}

func TestNearestDistancePlausible(t *testing.T) {
	d := NewDirectory()

	// Bangalore to Chennai is roughly 290 km as the crow flies.
	result := d.Nearest("Tamil Nadu", "e-waste", 12.9716, 77.5946)
	if len(result) == 0 {
		t.Fatal("no Tamil Nadu e-waste centers found")
	}
	if result[0].DistanceKm < 200 || result[0].DistanceKm > 400 {
		t.Errorf("Bangalore-Chennai distance %f km outside plausible range", result[0].DistanceKm)
	}
}

func TestStates(t *testing.T) {
	states := NewDirectory().States()
	if len(states) == 0 {
		t.Fatal("no states in directory")
	}
	for i := 1; i < len(states); i++ {
		if states[i] < states[i-1] {
			t.Errorf("states not sorted at index %d", i)
		}
	}
}
