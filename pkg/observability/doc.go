/*
Package observability provides observers for the script façades.

Metrics exports per-operation call counts, error counts by kind and call latency
to Prometheus. Logger writes one structured record per call. Both implement
script.Observer and can be combined with Multi.
*/
package observability
