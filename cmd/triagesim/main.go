// Canned stand-in for the external AI triage service, for local development
// against the triage passthrough endpoint.
package main

import (
	"encoding/json"
	"flag"
	"hash/fnv"
	"log"
	"net/http"

	"github.com/FiyinfoluwaDav/Datathon-2025/internal/triage"
	"github.com/gorilla/mux"
)

var cannedAssessments = []triage.Assessment{
	{
		UrgencyLevel:       "Critical",
		RecommendedActions: []string{"Refer to emergency care immediately", "Monitor vitals every 15 minutes"},
		Reasoning:          "Reported symptoms are consistent with an acute presentation requiring escalation.",
	},
	{
		UrgencyLevel:       "High",
		RecommendedActions: []string{"Schedule same-day consultation", "Start symptomatic treatment"},
		Reasoning:          "Symptoms warrant prompt review but no immediate escalation.",
	},
	{
		UrgencyLevel:       "Normal",
		RecommendedActions: []string{"Routine follow-up within one week"},
		Reasoning:          "Presentation matches a routine visit profile.",
	},
}

func main() {
	addr := flag.String("addr", ":9090", "Listen address")
	flag.Parse()

	r := mux.NewRouter()
	r.HandleFunc("/triage/{patient_id}", func(w http.ResponseWriter, req *http.Request) {
		patientID := mux.Vars(req)["patient_id"]

		// Deterministic per patient so repeated calls agree.
		h := fnv.New32a()
		h.Write([]byte(patientID))
		assessment := cannedAssessments[h.Sum32()%uint32(len(cannedAssessments))]

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(assessment); err != nil {
			log.Printf("failed to write response: %v", err)
		}
	}).Methods("GET")

	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods("GET")

	log.Printf("triage simulator listening on %s", *addr)
	log.Fatal(http.ListenAndServe(*addr, r))
}
