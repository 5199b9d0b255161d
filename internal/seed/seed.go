// Package seed generates demo booking data for first-run installs.
package seed

import (
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/google/uuid"

	"orsched/pkg/model"
)

var surgeryTypes = []string{
	"Appendectomy",
	"Cholecystectomy",
	"Fracture Fixation",
	"Cataract Surgery",
	"Cesarean Section",
	"Coronary Bypass",
	"Tumor Resection",
	"Joint Replacement",
}

var doctors = []string{"Dr. Zhang", "Dr. Li", "Dr. Wang", "Dr. Zhao", "Dr. Liu", "Dr. Chen"}

var rooms = []string{"OR-1", "OR-2", "OR-3", "OR-4", "OR-5"}

var depts = []string{
	"General Surgery",
	"Orthopedics",
	"Cardiothoracic Surgery",
	"Obstetrics and Gynecology",
	"Ophthalmology",
	"Urology",
	"Neurosurgery",
}

var wards = []string{"Ward 1", "Ward 2", "Ward 3", "VIP Ward"}

var diagnoses = []string{
	"Acute appendicitis",
	"Gallstones with cholecystitis",
	"Femoral neck fracture",
	"Cataract",
	"Uterine fibroids",
	"Triple-vessel coronary disease",
	"Bladder tumor",
}

var patients = []string{
	"Zhang San", "Li Si", "Wang Wu", "Zhao Liu", "Qian Qi", "Sun Ba",
	"Zhou Jiu", "Wu Shi", "Zheng Ming", "Wang Fang", "Feng Hua", "Chen Jing",
	"Chu Wei", "Wei Lan", "Jiang Hong", "Shen Yu",
}

var statusWeights = []struct {
	status model.Status
	weight int
}{
	{model.StatusUnscheduled, 15},
	{model.StatusScheduled, 60},
	{model.StatusInProgress, 15},
	{model.StatusCompleted, 20},
	{model.StatusCancelled, 5},
}

// Generate produces a demo booking set spanning seven days before and after
// now, two to five surgeries per day, sorted by start time. Future days only
// carry scheduled bookings; today never carries completed ones.
func Generate(now time.Time, rng *rand.Rand) []model.Booking {
	var bookings []model.Booking

	for dayOffset := -7; dayOffset <= 7; dayOffset++ {
		day := now.AddDate(0, 0, dayOffset)
		numSurgeries := rng.Intn(4) + 2

		for i := 0; i < numSurgeries; i++ {
			start := time.Date(day.Year(), day.Month(), day.Day(),
				rng.Intn(8)+8, halfHour(rng), 0, 0, day.Location())
			end := start.Add(time.Duration(rng.Intn(3)+1)*time.Hour +
				time.Duration(halfHour(rng))*time.Minute)

			status := pickStatus(rng)
			if dayOffset > 0 {
				status = model.StatusScheduled
			}
			if dayOffset == 0 && status == model.StatusCompleted {
				if rng.Intn(2) == 0 {
					status = model.StatusScheduled
				} else {
					status = model.StatusInProgress
				}
			}

			doctorIdx := rng.Intn(len(doctors))

			b := model.Booking{
				ID:               uuid.NewString(),
				PatientName:      patients[rng.Intn(len(patients))],
				Gender:           pickGender(rng),
				Age:              rng.Intn(60) + 18,
				InpatientNo:      inpatientNo(now, rng),
				Dept:             depts[rng.Intn(len(depts))],
				Ward:             wards[rng.Intn(len(wards))],
				BedNo:            fmt.Sprintf("%d", rng.Intn(40)+1),
				Diagnosis:        diagnoses[rng.Intn(len(diagnoses))],
				SurgeryType:      surgeryTypes[rng.Intn(len(surgeryTypes))],
				DoctorName:       doctors[doctorIdx],
				AssistantDoctors: pickAssistants(rng, doctorIdx),
				AnesthetistName:  doctors[rng.Intn(len(doctors))],
				OperatingRoom:    rooms[rng.Intn(len(rooms))],
				StartTime:        start,
				EndTime:          end,
				Urgency:          pickUrgency(rng, 25),
				Status:           status,
			}
			if rng.Intn(100) < 30 {
				b.Notes = "Routine surgery, patient condition stable"
			}
			bookings = append(bookings, b)
		}
	}

	sort.Slice(bookings, func(i, j int) bool {
		return bookings[i].StartTime.Before(bookings[j].StartTime)
	})
	return bookings
}

// GenerateApplications simulates a pull of pending surgery applications from
// an upstream system: all unscheduled, all awaiting room assignment.
func GenerateApplications(now time.Time, count int, rng *rand.Rand) []model.Booking {
	bookings := make([]model.Booking, 0, count)

	for i := 0; i < count; i++ {
		start := time.Date(now.Year(), now.Month(), now.Day(),
			rng.Intn(10)+8, halfHour(rng), 0, 0, now.Location())
		end := start.Add(time.Duration(rng.Intn(3)+1) * time.Hour)

		doctorIdx := rng.Intn(len(doctors))
		var assistants []string
		if rng.Intn(2) == 1 {
			assistants = []string{doctors[(doctorIdx+1)%len(doctors)]}
		}

		bookings = append(bookings, model.Booking{
			ID:               uuid.NewString(),
			PatientName:      patients[rng.Intn(len(patients))],
			Gender:           pickGender(rng),
			Age:              rng.Intn(60) + 18,
			InpatientNo:      inpatientNo(now, rng),
			Dept:             depts[rng.Intn(len(depts))],
			Ward:             wards[rng.Intn(len(wards))],
			BedNo:            fmt.Sprintf("%d", rng.Intn(40)+1),
			Diagnosis:        diagnoses[rng.Intn(len(diagnoses))],
			SurgeryType:      surgeryTypes[rng.Intn(len(surgeryTypes))],
			DoctorName:       doctors[doctorIdx],
			AssistantDoctors: assistants,
			AnesthetistName:  doctors[rng.Intn(len(doctors))],
			OperatingRoom:    "Unassigned",
			StartTime:        start,
			EndTime:          end,
			Urgency:          pickUrgency(rng, 20),
			Status:           model.StatusUnscheduled,
			Notes:            "Source: external application feed",
		})
	}

	return bookings
}

func pickStatus(rng *rand.Rand) model.Status {
	roll := rng.Intn(100)
	cumulative := 0
	for _, sw := range statusWeights {
		cumulative += sw.weight
		if roll < cumulative {
			return sw.status
		}
	}
	return model.StatusScheduled
}

func pickUrgency(rng *rand.Rand, urgentPercent int) model.Urgency {
	if rng.Intn(100) < urgentPercent {
		return model.UrgencyUrgent
	}
	return model.UrgencyElective
}

func halfHour(rng *rand.Rand) int {
	return rng.Intn(2) * 30
}

func pickGender(rng *rand.Rand) string {
	if rng.Intn(2) == 0 {
		return "male"
	}
	return "female"
}

func pickAssistants(rng *rand.Rand, doctorIdx int) []string {
	count := rng.Intn(3)
	assistants := make([]string, 0, count)
	for len(assistants) < count {
		idx := rng.Intn(len(doctors))
		if idx == doctorIdx || contains(assistants, doctors[idx]) {
			continue
		}
		assistants = append(assistants, doctors[idx])
	}
	return assistants
}

func inpatientNo(now time.Time, rng *rand.Rand) string {
	return fmt.Sprintf("%02d%06d", now.Year()%100, rng.Intn(1000000))
}

func contains(values []string, v string) bool {
	for _, existing := range values {
		if existing == v {
			return true
		}
	}
	return false
}
