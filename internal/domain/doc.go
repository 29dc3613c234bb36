// Package domain implements the mission radiation risk model over NASA DONKI
// space-weather notifications.
//
// # Data Source
//
// Events originate from the NASA DONKI notification API
// (https://api.nasa.gov/DONKI/), endpoints FLR (solar flares), CME (coronal
// mass ejections), and GST (geomagnetic storms). The feed adapter fetches the
// mission date range, parses each notification, and hands the engine a flat
// list of [SpaceWeatherEvent] records. A local file drop with the same JSON
// shapes is accepted interchangeably; the engine is agnostic to provenance.
//
// # Magnitude Conventions
//
// Magnitude encoding varies by event type:
//
//	Flare ("classType" field):
//	  - Letter-coded X-ray intensity class with a numeric coefficient,
//	    e.g. "M5.0", "X2.1". Letters A, B, C, M, X; each letter step is a
//	    tenfold increase in X-ray flux.
//	  - Severity = letter base × coefficient, scaled so M1.0 = 1.0
//	    (C5.0 → 0.5, X9.0 → 90). Unbounded above, typically 0–50.
//	Coronal mass ejection ("speed" field):
//	  - Plane-of-sky speed in km/s. The ambient solar wind moves at roughly
//	    300–500 km/s, so speeds below the quiescent floor (default 400 km/s)
//	    carry no elevated risk and score 0. Above the floor, severity grows
//	    linearly (default 1 point per 100 km/s) and is capped at the ceiling
//	    (default 3000 km/s) to bound outlier analyses.
//	Geomagnetic storm ("allKpIndex" entries):
//	  - Planetary Kp index on the bounded 0–9 scale. Rescaled (default ×5)
//	    so storm severities share the numeric range of the other two types.
//
// Malformed magnitudes (unknown flare letter, Kp outside 0–9, negative speed)
// normalize to severity 0 with a warning rather than failing the assessment;
// one bad record must not void the result.
//
// # Risk Composition
//
// Per-type severities are aggregated over the mission window expanded by a
// residual-risk margin, reduced with a worst-event-dominant rule
// (max + 0.1 × sum of the rest), weighted, combined with an environment
// baseline, and scaled by orbit exposure, shielding attenuation, and a
// sub-linear mission-duration factor. The result is clamped to [0,100] and
// mapped to one of four categories. This is an explainable heuristic for
// situational awareness, not a dosimetry model: no particle transport,
// shielding physics, or organ dose equivalents.
//
// # ID Generation
//
// Event IDs are deterministic SHA-256 hashes of type|timestamp|magnitude.
// Re-parsing the same notification produces the same ID, which keeps replays
// and repeated assessments byte-identical. See [NewEventID].
package domain
