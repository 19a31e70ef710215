// Package idago provides a Pandas-like interface for IBM Netezza
// Performance Server, pushing the computation down to the database.
//
// Instead of loading a table into local memory, an ida.DataFrame keeps a
// reference to the remote table and translates projections, filters, joins
// and descriptive statistics into SQL that runs in-database. Only results
// are transferred back to the client.
//
// # Quick Start
//
//	package main
//
//	import (
//	    "context"
//	    "fmt"
//	    "log"
//
//	    "github.com/YuminosukeSato/idago/ida"
//	)
//
//	func main() {
//	    ctx := context.Background()
//
//	    idadb, err := ida.ConnectContext(ctx, ida.Config{
//	        DataSource: "user=admin password=password dbname=testdb host=localhost",
//	    })
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    defer idadb.Close()
//
//	    df, err := ida.OpenDataFrame(idadb, "IRIS")
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    mean, err := df.Mean(ctx)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(mean)
//	}
//
// # Packages
//
//   - ida: connection handling, DataFrame/Series and in-database statistics
//   - geo: geospatial frames backed by Netezza spatial functions
//   - learn: in-database machine learning through the NZA stored procedures
//   - explore: distribution analysis, histograms and plotting
//   - metrics: local evaluation metrics for retrieved predictions
//   - sampledata: embedded sample datasets (iris, swiss, titanic)
//
// # In-Database Machine Learning
//
// The learn package wraps the Netezza Analytics procedures behind a
// scikit-learn-like Fit/Predict/Score API:
//
//	km := learn.NewKMeans(idadb, "IRIS_KMEANS")
//	_, err := km.Fit(ctx, df, learn.KMeansParams{K: 3})
//
// Temporary output tables are cleaned up automatically when the call runs
// under a learn.AutoDeleteContext.
package idago
