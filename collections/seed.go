package collections

import (
	"fmt"
	"log"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// ── Definition structs ───────────────────────────────────────────────────

type employeeDef struct {
	name       string
	department string
	position   string
	location   string
	costCenter string
	status     string
	hired      string
	skills     []string
	manager    string
}

type fuelBillDef struct {
	cardNumber string
	vehicle    string
	station    string
	liters     float64
	amount     float64
	billDate   time.Time
	status     string
}

// ── Seed data ────────────────────────────────────────────────────────────

var seedEmployees = []employeeDef{
	{"Asha Rao", "Finance", "Controller", "Mumbai", "FIN-100", "active", "2019-04-01", []string{"SAP", "Excel"}, "Vikram Mehta"},
	{"Ravi Kumar", "Finance", "Accountant", "Mumbai", "FIN-110", "active", "2021-07-12", []string{"Excel", "Tally"}, "Asha Rao"},
	{"Meera Shah", "Finance", "Payroll Analyst", "Pune", "FIN-120", "on_leave", "2022-01-17", []string{"Excel"}, "Asha Rao"},
	{"Arjun Nair", "Fleet", "Fleet Manager", "Chennai", "FLT-200", "active", "2018-09-03", []string{"Logistics", "Telematics"}, "Vikram Mehta"},
	{"Kavya Iyer", "Fleet", "Dispatcher", "Chennai", "FLT-210", "active", "2023-02-20", []string{"Routing"}, "Arjun Nair"},
	{"Suresh Pillai", "Fleet", "Driver", "Chennai", "FLT-220", "terminated", "2017-05-15", []string{"Heavy Vehicles"}, "Arjun Nair"},
	{"Deepa Menon", "Fleet", "Driver", "Bengaluru", "FLT-220", "active", "2020-11-30", []string{"Light Vehicles"}, "Arjun Nair"},
	{"Nikhil Joshi", "Engineering", "Backend Engineer", "Bengaluru", "ENG-300", "active", "2021-03-08", []string{"Go", "SQL", "Kubernetes"}, "Priya Nair"},
	{"Priya Nair", "Engineering", "Engineering Manager", "Bengaluru", "ENG-300", "active", "2016-06-27", []string{"Go", "Architecture"}, "Vikram Mehta"},
	{"Rahul Verma", "Engineering", "Frontend Engineer", "Pune", "ENG-310", "active", "2022-08-22", []string{"TypeScript", "HTMX"}, "Priya Nair"},
	{"Sneha Kulkarni", "Engineering", "QA Engineer", "Pune", "ENG-320", "on_leave", "2020-02-10", []string{"Testing", "SQL"}, "Priya Nair"},
	{"Vikram Mehta", "Operations", "Director", "Mumbai", "OPS-400", "active", "2015-01-05", []string{"Strategy"}, ""},
	{"Anita Desai", "Operations", "Office Manager", "Mumbai", "OPS-410", "active", "2019-10-14", []string{"Procurement", "Excel"}, "Vikram Mehta"},
	{"Farhan Qureshi", "Operations", "Facilities Lead", "Delhi", "OPS-420", "active", "2021-12-01", []string{"Maintenance"}, "Anita Desai"},
	{"Lakshmi Reddy", "HR", "HR Partner", "Hyderabad", "HR-500", "active", "2018-03-19", []string{"Recruiting", "Payroll"}, "Vikram Mehta"},
	{"Gaurav Singh", "HR", "Recruiter", "Delhi", "HR-510", "terminated", "2022-05-02", []string{"Recruiting"}, "Lakshmi Reddy"},
	{"Pooja Bhat", "HR", "Recruiter", "Hyderabad", "HR-510", "active", "2023-06-26", []string{"Recruiting", "Onboarding"}, "Lakshmi Reddy"},
	{"Imran Khan", "Engineering", "SRE", "Hyderabad", "ENG-330", "active", "2020-07-06", []string{"Kubernetes", "Go", "Linux"}, "Priya Nair"},
	{"Divya Ramesh", "Finance", "Analyst", "Bengaluru", "FIN-130", "active", "2023-09-11", []string{"SQL", "Excel"}, "Asha Rao"},
	{"Karthik Subramanian", "Fleet", "Mechanic", "Chennai", "FLT-230", "active", "2019-01-28", []string{"Diesel Engines"}, "Arjun Nair"},
	{"Neha Agarwal", "Operations", "Procurement Officer", "Delhi", "OPS-430", "on_leave", "2021-04-19", []string{"Procurement"}, "Anita Desai"},
	{"Manoj Tiwari", "Fleet", "Driver", "Delhi", "FLT-220", "active", "2022-10-03", []string{"Heavy Vehicles"}, "Arjun Nair"},
	{"Shalini Gupta", "Engineering", "Data Engineer", "Mumbai", "ENG-340", "active", "2021-11-15", []string{"SQL", "Python"}, "Priya Nair"},
	{"Rohan Das", "HR", "Payroll Specialist", "Mumbai", "HR-520", "active", "2020-08-24", []string{"Payroll", "Tally"}, "Lakshmi Reddy"},
	{"Tanvi Patil", "Finance", "Auditor", "Pune", "FIN-140", "active", "2017-12-11", []string{"Audit", "Excel"}, "Asha Rao"},
}

var (
	seedVehicles = []string{"MH-01-AB-1234", "MH-12-CD-5678", "TN-09-EF-4321", "KA-05-GH-8765", "DL-03-IJ-2468", "TS-07-KL-1357"}
	seedStations = []string{"HP Andheri", "IOCL Guindy", "BPCL Koramangala", "Shell Hinjewadi", "IOCL Connaught Place"}
	seedStatuses = []string{"pending", "approved", "approved", "rejected", "pending"}
)

// fuelBillDefs generates a deterministic set of fuel bills spread over the
// months before anchor.
func fuelBillDefs(anchor time.Time, n int) []fuelBillDef {
	defs := make([]fuelBillDef, n)
	for i := range defs {
		liters := float64(20 + (i*7)%45)
		price := 94.5 + float64(i%5)*1.25
		defs[i] = fuelBillDef{
			cardNumber: fmt.Sprintf("4111-%04d", 1000+(i%6)*37),
			vehicle:    seedVehicles[i%len(seedVehicles)],
			station:    seedStations[(i*3)%len(seedStations)],
			liters:     liters,
			amount:     float64(int(liters*price*100)) / 100,
			billDate:   anchor.AddDate(0, 0, -3*i),
			status:     seedStatuses[i%len(seedStatuses)],
		}
	}
	return defs
}

// Seed populates the employees and fuel_bills collections with demo data.
// It is safe to call on every startup because each collection is skipped
// when it already holds records.
func Seed(app *pocketbase.PocketBase) error {
	if err := seedEmployeeRecords(app); err != nil {
		return err
	}
	anchor := time.Date(2024, 6, 28, 9, 30, 0, 0, time.UTC)
	return seedFuelBillRecords(app, fuelBillDefs(anchor, 72))
}

func isEmpty(app *pocketbase.PocketBase, name string) (*core.Collection, bool, error) {
	col, err := app.FindCollectionByNameOrId(name)
	if err != nil {
		return nil, false, fmt.Errorf("seed: could not find %s collection: %w", name, err)
	}
	total, err := app.CountRecords(col)
	if err != nil {
		return nil, false, fmt.Errorf("seed: could not count %s: %w", name, err)
	}
	return col, total == 0, nil
}

func seedEmployeeRecords(app *pocketbase.PocketBase) error {
	col, empty, err := isEmpty(app, "employees")
	if err != nil || !empty {
		return err
	}
	log.Println("seed: employees collection is empty – inserting seed data …")

	for _, d := range seedEmployees {
		r := core.NewRecord(col)
		r.Set("name", d.name)
		r.Set("department", d.department)
		r.Set("position", d.position)
		r.Set("location", d.location)
		r.Set("cost_center", d.costCenter)
		r.Set("status", d.status)
		r.Set("hired", d.hired+" 00:00:00.000Z")
		r.Set("skills", d.skills)
		if d.manager != "" {
			r.Set("manager", map[string]any{"name": d.manager})
		}
		if err := app.Save(r); err != nil {
			return fmt.Errorf("seed: save employee %q: %w", d.name, err)
		}
	}
	log.Printf("seed: inserted %d employees", len(seedEmployees))
	return nil
}

func seedFuelBillRecords(app *pocketbase.PocketBase, defs []fuelBillDef) error {
	col, empty, err := isEmpty(app, "fuel_bills")
	if err != nil || !empty {
		return err
	}
	log.Println("seed: fuel_bills collection is empty – inserting seed data …")

	for _, d := range defs {
		r := core.NewRecord(col)
		r.Set("card_number", d.cardNumber)
		r.Set("vehicle", d.vehicle)
		r.Set("station", d.station)
		r.Set("liters", d.liters)
		r.Set("amount", d.amount)
		r.Set("bill_date", d.billDate)
		r.Set("status", d.status)
		if err := app.Save(r); err != nil {
			return fmt.Errorf("seed: save fuel bill %s: %w", d.vehicle, err)
		}
	}
	log.Printf("seed: inserted %d fuel bills", len(defs))
	return nil
}
