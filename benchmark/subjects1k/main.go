package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/structpb"
	monitorGrpc "liyu1981.xyz/maternity-monitor-service/pkg/grpc"
)

var maxSubjects int = 1000
var httpHostPort string = "127.0.0.1:1080"
var grpcHostPort string = "127.0.0.1:1081"

var grpcClient *monitorGrpc.MonitorServiceClient

var rnd *rand.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
var rndLock sync.Mutex

func main() {
	subjectIDs := make([]string, maxSubjects)
	for i := range maxSubjects {
		subjectIDs[i] = uuid.NewString()
	}
	fmt.Printf("generated %v subject IDs\n", maxSubjects)

	resp, err := http.Get(fmt.Sprintf("http://%s/healthz", httpHostPort))
	if err != nil {
		log.Fatal("Failed to connect to HTTP server:", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		log.Fatal("HTTP server not available")
	}

	fmt.Printf("http server verified\n")

	conn, err := grpc.NewClient(grpcHostPort, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		log.Fatal("Failed to connect to gRPC server:", err)
	}
	defer conn.Close()
	grpcClient = monitorGrpc.NewMonitorServiceClient(conn)

	fmt.Printf("gRPC client connected\n")

	var startTime time.Time
	var usedTime time.Duration

	startTime = time.Now()
	wg := sync.WaitGroup{}
	for i := range maxSubjects {
		wg.Add(1)
		go func() {
			insertThresholds(subjectIDs[i])
			fmt.Printf("\rinserted thresholds for subject %v", i)
			wg.Done()
		}()
	}
	wg.Wait()
	usedTime = time.Since(startTime)

	fmt.Printf(
		"\rinserted thresholds for %v subjects: used time=%v seconds, throughput=%v action/second\n",
		maxSubjects, usedTime.Seconds(), float64(maxSubjects)/usedTime.Seconds(),
	)

	startTime = time.Now()
	wg = sync.WaitGroup{}
	for i := range maxSubjects {
		wg.Add(1)
		go func() {
			doAction(subjectIDs[i])
			wg.Done()
		}()
	}
	wg.Wait()
	usedTime = time.Since(startTime)

	fmt.Printf(
		"\n\rdid actions for %v subjects: used time=%v seconds, throughput=%v action/second\n",
		maxSubjects, usedTime.Seconds(), float64(maxSubjects*3)/usedTime.Seconds(),
	)
}

func flipCoin() bool {
	rndLock.Lock()
	defer rndLock.Unlock()
	return rnd.Int31n(100000)%2 == 0
}

func rndFloat64(min, max float64, decimal int) float64 {
	rndLock.Lock()
	val := min + rnd.Float64()*(max-min)
	rndLock.Unlock()
	multiplier := math.Pow10(decimal)
	return math.Round(val*multiplier) / multiplier
}

func postJSON(path string, payload any) {
	jsonData, _ := json.Marshal(payload)
	resp, err := http.Post(fmt.Sprintf("http://%s%s", httpHostPort, path), "application/json", bytes.NewBuffer(jsonData))
	if err != nil {
		fmt.Printf("\nerror: %v\n", err)
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusBadRequest {
		fmt.Printf("\n%s responded %v\n", path, resp.StatusCode)
	}
}

func callGrpc(call func(context.Context, *structpb.Struct, ...grpc.CallOption) (*structpb.Struct, error), payload map[string]any) *structpb.Struct {
	in, err := structpb.NewStruct(payload)
	if err != nil {
		panic(err)
	}
	out, err := call(context.Background(), in)
	if err != nil {
		fmt.Printf("\nerror: %v\n", err)
	}
	return out
}

func insertThresholds(subjectID string) {
	payload := map[string]any{
		"systolic_warning":  rndFloat64(125, 140, 0),
		"diastolic_warning": rndFloat64(80, 90, 0),
	}
	postJSON(fmt.Sprintf("/subjects/%s/thresholds", subjectID), payload)
}

func doAction(subjectID string) {
	actions := []func(){
		genPostReadingAction(subjectID),
		genGetSummaryAction(subjectID),
		genKickSessionAction(subjectID),
	}
	actionNames := []string{
		"PostReading",
		"GetSummary",
		"KickSession",
	}
	rndLock.Lock()
	rnd.Shuffle(len(actions), func(i, j int) {
		actions[i], actions[j] = actions[j], actions[i]
		actionNames[i], actionNames[j] = actionNames[j], actionNames[i]
	})
	rndLock.Unlock()
	for index, action := range actions {
		action()
		fmt.Printf("\rexecuted action %v for subject %v", actionNames[index], subjectID)
		time.Sleep(time.Duration(100+rndFloat64(0, 1000, 0)) * time.Millisecond)
	}
}

func genPostReadingAction(subjectID string) func() {
	return func() {
		payload := map[string]any{
			"systolic":         rndFloat64(100, 160, 0),
			"diastolic":        rndFloat64(60, 100, 0),
			"heart_rate":       rndFloat64(60, 110, 0),
			"spo2":             rndFloat64(90, 100, 0),
			"gestational_week": 30,
		}

		if flipCoin() {
			postJSON(fmt.Sprintf("/subjects/%s/readings", subjectID), payload)
		} else {
			payload["subject_id"] = subjectID
			callGrpc(grpcClient.SubmitReading, payload)
		}
	}
}

func genGetSummaryAction(subjectID string) func() {
	return func() {
		if flipCoin() {
			resp, err := http.Get(fmt.Sprintf("http://%s/subjects/%s/summary", httpHostPort, subjectID))
			if err != nil {
				fmt.Printf("\nerror: %v\n", err)
				return
			}
			defer resp.Body.Close()
		} else {
			callGrpc(grpcClient.GetSummary, map[string]any{"subject_id": subjectID})
		}
	}
}

func genKickSessionAction(subjectID string) func() {
	return func() {
		session := callGrpc(grpcClient.StartSession, map[string]any{"subject_id": subjectID, "type": "kick"})
		if session == nil {
			return
		}
		sessionID := session.GetFields()["ID"].GetStringValue()
		key := map[string]any{"subject_id": subjectID, "session_id": sessionID, "count": 10}
		callGrpc(grpcClient.RecordEvent, key)
		callGrpc(grpcClient.EndSession, map[string]any{"subject_id": subjectID, "session_id": sessionID})
	}
}
