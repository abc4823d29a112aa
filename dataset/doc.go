// Package dataset reads and writes scheduling instances in the CSV layout of
// the Tadumadze, Emde and Diefenbach benchmark set for unrelated parallel
// machines with time windows.
//
// Every record is one instance:
//
//	M,N,r,d,p
//	2,3,"[0, 1, 2]","[2, 3, 5]","[1, 2, 2];[2, 1, 3]"
//
// M is the machine count and N the job count. r and d are bracketed lists
// of N release times and deadlines. p holds one bracketed row of N
// processing times per machine; since the instance is scheduled on
// identical machines, a job's volume is the minimum over its column.
// Columns are located by header name, so their order is free.
//
// Job ids are drawn from a caller-supplied core.IDGenerator and therefore
// unique across all instances of one Parse call. Every instance gets the
// lower-bound parameter q = 1 unless WithLowerBound says otherwise.
package dataset
