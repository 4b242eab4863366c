package mockplatform

import "github.com/atomicstack/pipeline-console/internal/api"

// DemoNamespace is the namespace seeded by Demo.
const DemoNamespace = "default"

// Demo returns a platform pre-populated with a small pipeline deployment.
func Demo() *Platform {
	p := New()
	p.Put(DemoNamespace, Namespace{
		Apps: map[string]api.App{
			"PurchaseHistory": {
				Name:        "PurchaseHistory",
				Description: "Aggregates purchase events per customer",
				Artifact:    api.Artifact{Name: "purchase-app", Version: "1.4.0", Scope: "USER"},
				Programs: []api.Program{
					{Name: "PurchaseFlow", Type: "Flow", Description: "Stores purchase events"},
					{Name: "PurchaseHistoryBuilder", Type: "MapReduce"},
					{Name: "PurchaseHistoryWorkflow", Type: "Workflow"},
					{Name: "PurchaseHistoryService", Type: "Service"},
				},
				Datasets: []api.Dataset{
					{Name: "purchases", Type: "objectStore"},
					{Name: "history", Type: "table"},
					{Name: "frequentCustomers", Type: "keyValueTable"},
				},
				Streams: []api.Stream{{Name: "purchaseStream"}},
			},
			"WordCount": {
				Name:        "WordCount",
				Description: "Counts words from a text stream",
				Artifact:    api.Artifact{Name: "wordcount", Version: "2.0.1", Scope: "SYSTEM"},
				Programs: []api.Program{
					{Name: "WordCounter", Type: "Spark"},
					{Name: "RetrieveCounts", Type: "Service"},
				},
				Datasets: []api.Dataset{{Name: "wordStats", Type: "table"}},
				Streams:  []api.Stream{{Name: "wordStream"}},
			},
		},
		Properties: map[string]map[string]string{
			"PurchaseHistory": {"owner": "analytics", "tier": "gold", "creation-time": "1500000000000"},
			"WordCount":       {"owner": "examples"},
		},
		Tables: []api.Table{
			{Table: "dataset_history", Database: "default"},
			{Table: "dataset_purchases", Database: "default"},
			{Table: "stream_purchasestream", Database: "default"},
		},
		Connections: []api.Connection{
			{ID: "kafka-local", Name: "Local Kafka", Type: "KAFKA", Properties: map[string]string{"brokers": "localhost:9092"}},
			{ID: "kafka-down", Name: "Unreachable Kafka", Type: "KAFKA", Properties: map[string]string{"brokers": "10.0.0.1:9092"}},
			{ID: "mysql-main", Name: "Main MySQL", Type: "DATABASE"},
		},
		Infos: map[string]api.ConnectionInfo{
			"kafka-local": {"id": "kafka-local", "name": "Local Kafka", "type": "KAFKA", "properties": map[string]interface{}{"brokers": "localhost:9092"}},
			"kafka-down":  {"id": "kafka-down", "name": "Unreachable Kafka", "type": "KAFKA", "properties": map[string]interface{}{"brokers": "10.0.0.1:9092"}},
		},
		Topics: map[string][]string{
			"kafka-local": {"clickstream", "orders", "payments", "purchase-events"},
		},
	})
	return p
}
