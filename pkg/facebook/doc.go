// Package facebook provides a client for the Facebook Graph API surface
// the archiver needs.
//
// This package includes:
//   - A configurable HTTP client with typed transport errors
//   - A cursor walker that follows paging.next until a collection is exhausted
//   - A typed endpoint builder carrying the entity id and access token as
//     explicit query parameters
//   - Wire models for posts, attachment trees and photo nodes
//
// Example usage:
//
//	client := facebook.NewClient(30*time.Second, nil)
//	endpoints := facebook.NewEndpoints("", "", token)
//
//	err := facebook.WalkCollection(client, endpoints.PagePostIDsURL(pageID),
//		func(ids []facebook.IDObject) error {
//			for _, id := range ids {
//				var post facebook.Post
//				if err := client.GetJSON(endpoints.PostAttachmentsURL(id.ID), &post); err != nil {
//					return err
//				}
//				// process post
//			}
//			return nil
//		})
package facebook
