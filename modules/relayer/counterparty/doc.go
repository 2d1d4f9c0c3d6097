/*
Package counterparty resolves the packet acknowledgements that have been
written on a destination chain but not yet processed by the chain that sent
the packets.

Resolution is a sequence of read-only queries: the channel end is located on
the source chain to learn its counterparty, the pending packet commitments are
fetched from the source, and the commitment sequences are checked against the
acknowledgements stored on the destination in batched existence queries. The
result is the ascending intersection of the two sets.

The package holds no state between resolutions. Chains are reached through the
query interfaces in the types package so that any gRPC query client, or an
in-memory double, can serve as an endpoint.
*/
package counterparty
