package graphql

// Field selections shared by operation documents. They mirror the entity
// snapshots in the schema package.
const (
	spaceFields = `
fragment SpaceFields on Space {
  id
  name
  slug
  setupState
  openInvitationUrl
}
`
	groupFields = `
fragment GroupFields on Group {
  id
  spaceId
  name
  isBookmarked
  isDefault
  isPrivate
}
`
	postFields = `
fragment PostFields on Post {
  id
  spaceId
  groupIds
  authorId
  body
  state
  postedAt
  replyCount
}
`
	replyFields = `
fragment ReplyFields on Reply {
  id
  postId
  authorId
  body
  postedAt
}
`
	spaceUserFields = `
fragment SpaceUserFields on SpaceUser {
  id
  spaceId
  userId
  firstName
  lastName
  role
}
`
)
