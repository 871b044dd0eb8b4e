// Package realtimews connects to the OpenAI and Azure OpenAI realtime APIs over
// a WebSocket and relays JSON events in both directions.
//
// A Conn owns exactly one socket. Outbound ClientEvents are serialized to text
// frames; inbound frames are parsed into the ServerEvent tagged union and
// emitted to subscribers. There is no reconnection, queuing or flow control:
// when the socket goes away, the caller decides what to do.
//
// Basic usage:
//
//	conn, err := realtimews.New(realtimews.Options{Model: "gpt-4o-realtime-preview"},
//		&realtimews.OpenAIClient{Key: os.Getenv("OPENAI_API_KEY")})
//	if err != nil {
//		log.Fatal(err)
//	}
//	conn.OnError(func(err *realtimews.RealtimeError) { log.Println(err) })
//	realtimews.Subscribe(conn, func(e realtimews.ResponseTextDelta) { fmt.Print(e.Delta) })
//
//	if err := conn.Open(ctx); err != nil {
//		log.Fatal(err)
//	}
//	defer conn.Close()
//	_ = conn.Send(ctx, realtimews.ResponseCreateEvent{})
//
// Errors follow three paths:
//   - configuration errors are returned from New and Open (*ConfigError);
//   - usage errors are returned synchronously (ErrNotOpen from Send);
//   - transport errors (bad frames, socket failures, failed writes and closes,
//     server "error" events) go only to OnError listeners. If none is bound
//     they are logged and otherwise dropped.
//
// Azure resources authenticate with an api-key or with Entra ID tokens from a
// TokenProvider; see AzureClient. Browser (js/wasm) builds refuse to construct
// a Conn with secret credentials unless explicitly allowed; ephemeral keys
// minted by the sessions package are allowed implicitly.
package realtimews
